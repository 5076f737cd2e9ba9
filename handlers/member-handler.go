package handlers

import (
	"net/http"

	"dues-service/logging"
	"dues-service/middleware"
	"dues-service/models"
	"dues-service/services"
)

type MemberHandler struct {
	service *services.MemberService
}

func NewMemberHandler(service *services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// userIDOr falls back to the verified token subject when the client did not
// name a user explicitly.
func userIDOr(r *http.Request, userID string) string {
	if userID != "" {
		return userID
	}
	return middleware.SubjectFromContext(r.Context())
}

func (h *MemberHandler) writeMemberError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusNotFound {
		message = "Member not found"
	}
	if status >= http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: MEMBER_STORE_ERROR, Description: %v", err)
	}
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}

func (h *MemberHandler) GetMemberData(w http.ResponseWriter, r *http.Request) {
	userID := userIDOr(r, r.URL.Query().Get("userId"))

	member, err := h.service.Fetch(r.Context(), userID)
	if err != nil {
		h.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "member": member})
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"userId"`
		Name        string `json:"name"`
		MemberType  string `json:"memberType"`
		PledgeClass string `json:"pledgeClass"`
	}
	if err := decodeBody(r, &req); err != nil {
		logging.Logger.Warnf("Event ID: MEMBER_CREATE_BAD_BODY, Description: Invalid request payload: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid request payload"})
		return
	}

	member, err := h.service.Create(r.Context(), userIDOr(r, req.UserID), req.Name, req.MemberType, req.PledgeClass)
	if err != nil {
		h.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "member": member})
}

func (h *MemberHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string            `json:"userId"`
		Status models.DuesStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid request payload"})
		return
	}

	member, err := h.service.UpdateStatus(r.Context(), userIDOr(r, req.UserID), req.Status)
	if err != nil {
		if statusFor(err) == http.StatusBadRequest {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "Invalid status. Must be one of: ACTIVE, LOA, PART-TIME",
			})
			return
		}
		h.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "member": member})
}

func (h *MemberHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string  `json:"userId"`
		Amount float64 `json:"amount"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid request payload"})
		return
	}

	member, err := h.service.RecordPayment(r.Context(), userIDOr(r, req.UserID), req.Amount)
	if err != nil {
		h.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "member": member})
}

func (h *MemberHandler) OutstandingDues(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListOutstanding(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: OUTSTANDING_DUES_FAILED, Description: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, members)
}
