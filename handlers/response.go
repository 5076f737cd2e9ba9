package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dues-service/logging"
	"dues-service/repositories"
	"dues-service/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

// statusFor maps a service outcome onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON body into dst. An empty body or a literal null
// is reported as errNoData.
func decodeBody(r *http.Request, dst interface{}) error {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return errNoData
		}
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return errNoData
	}
	return json.Unmarshal(raw, dst)
}

var errNoData = errors.New("no data provided")
