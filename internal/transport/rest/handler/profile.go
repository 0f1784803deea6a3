package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bimatch/internal/service"
)

// ProfileHandler serves the static profile definitions.
type ProfileHandler struct {
	sessionSvc *service.SessionService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(sessionSvc *service.SessionService) *ProfileHandler {
	return &ProfileHandler{sessionSvc: sessionSvc}
}

// Get handles GET /v1/profiles/{profileId}. An unknown ID never renders
// a partial view: the client is redirected back to the quiz entry.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.sessionSvc.Profile(mux.Vars(r)["profileId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
