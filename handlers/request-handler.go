package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dues-service/logging"
	"dues-service/middleware"
	"dues-service/models"
	"dues-service/services"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	service *services.RequestService
}

func NewRequestHandler(service *services.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) listByStatus(w http.ResponseWriter, r *http.Request, status models.RequestStatus) {
	requests, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		logging.Logger.Errorf("Event ID: REQUEST_LIST_FAILED, Description: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.RequestPending)
}

func (h *RequestHandler) GetAcceptedRequests(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.RequestAccepted)
}

// GetDeclinedRequests returns the declined requests and purges them.
func (h *RequestHandler) GetDeclinedRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListDeclinedAndPurge(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: REQUEST_PURGE_FAILED, Description: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   err.Error(),
			"message": "Failed to fetch declined requests",
		})
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// amountText accepts the amount as either a JSON string or a JSON number.
func amountText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	if s := strings.TrimSpace(string(raw)); s != "null" {
		return s
	}
	return ""
}

func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Department  string          `json:"department"`
		Amount      json.RawMessage `json:"amount"`
		Description string          `json:"description"`
		Requester   string          `json:"requester"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   err.Error(),
			"message": "Failed to create request",
		})
		return
	}

	requester := req.Requester
	if requester == "" {
		requester = middleware.SubjectFromContext(r.Context())
	}

	id, err := h.service.Create(r.Context(), req.Department, amountText(req.Amount), req.Description, requester)
	if err != nil {
		logging.Logger.Warnf("Event ID: REQUEST_CREATE_FAILED, Description: %v", err)
		writeJSON(w, statusFor(err), map[string]string{
			"error":   err.Error(),
			"message": "Failed to create request",
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Request created successfully",
		"id":      id,
	})
}

func (h *RequestHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status models.RequestStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.Transition(r.Context(), id, req.Status); err != nil {
		logging.Logger.Warnf("Event ID: REQUEST_UPDATE_FAILED, Description: Request %s: %v", id, err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request updated successfully"})
}
