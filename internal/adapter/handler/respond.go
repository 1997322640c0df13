package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openpitch/matchbook/internal/core/domain"
)

// userID returns the authenticated caller set by the identity
// collaborator in front of this service. Credentials never reach here.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	status := http.StatusInternalServerError
	message := err.Error()
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidArgument:
		status = http.StatusBadRequest
	case domain.KindConflict, domain.KindAlreadyBooked, domain.KindMatchFull:
		status = http.StatusConflict
	case domain.KindUnauthorized:
		status = http.StatusForbidden
	case domain.KindStoreUnavailable:
		status = http.StatusServiceUnavailable
	default:
		message = "internal server error"
	}

	writeJSON(w, status, map[string]string{
		"error": message,
		"kind":  string(kind),
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
