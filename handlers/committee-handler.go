package handlers

import (
	"errors"
	"net/http"

	"dues-service/logging"
	"dues-service/models"
	"dues-service/services"
)

type CommitteeHandler struct {
	service *services.CommitteeService
}

func NewCommitteeHandler(service *services.CommitteeService) *CommitteeHandler {
	return &CommitteeHandler{service: service}
}

func (h *CommitteeHandler) AddCommittee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string            `json:"name"`
		Budget     float64           `json:"budget"`
		Activities []models.Activity `json:"activities"`
	}
	if err := decodeBody(r, &req); err != nil {
		if errors.Is(err, errNoData) {
			writeError(w, http.StatusBadRequest, "No data provided")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.Upsert(r.Context(), req.Name, req.Budget, req.Activities); err != nil {
		logging.Logger.Warnf("Event ID: COMMITTEE_UPSERT_FAILED, Description: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Committee added successfully!"})
}

func (h *CommitteeHandler) GetCommittees(w http.ResponseWriter, r *http.Request) {
	committees, err := h.service.List(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: COMMITTEE_LIST_FAILED, Description: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, committees)
}

func (h *CommitteeHandler) GetCommitteeBudgets(w http.ResponseWriter, r *http.Request) {
	committees, err := h.service.ListBudgets(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: COMMITTEE_BUDGETS_FAILED, Description: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, committees)
}
