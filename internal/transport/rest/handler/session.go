package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"bimatch/internal/cache"
	"bimatch/internal/form"
	"bimatch/internal/model"
	"bimatch/internal/quiz"
	"bimatch/internal/service"
)

// SessionHandler handles the quiz session endpoints: contact form,
// decisions, result and export.
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// StartResponse is returned when a session is created.
type StartResponse struct {
	SessionID string `json:"sessionId"`
	Total     int    `json:"total"` // number of dilemmas in the deck
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Start(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, StartResponse{
		SessionID: session.ID,
		Total:     len(quiz.Dilemmas),
	})
}

// ValidateFieldRequest is the body for the stateless validation
// endpoint backing live per-field feedback.
type ValidateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ValidateField handles POST /v1/contact/validate
func (h *SessionHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req ValidateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	value := req.Value
	if req.Field == model.FieldPhoneNumber {
		value = form.SanitizePhone(value)
	}
	out := form.ValidateField(req.Field, value)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"field":   req.Field,
		"value":   value,
		"valid":   out.Valid,
		"message": out.Message,
	})
}

// SetFieldRequest is the body for a single field update.
type SetFieldRequest struct {
	Value string `json:"value"`
}

// SetField handles PUT /v1/sessions/{id}/contact/fields/{field}
func (h *SessionHandler) SetField(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.sessionSvc.SetField(r.Context(), vars["id"], vars["field"], req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubmitContactResponse is returned after a successful submission.
type SubmitContactResponse struct {
	Status model.FormStatus `json:"status"`
	Token  string           `json:"token"`
}

// SubmitContact handles POST /v1/sessions/{id}/contact
func (h *SessionHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload *model.ContactRecord
	if r.ContentLength != 0 {
		payload = &model.ContactRecord{}
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	state, token, err := h.sessionSvc.SubmitContact(r.Context(), id, payload)
	if errors.Is(err, form.ErrInvalid) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"fields": state.Errors,
		})
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SubmitContactResponse{Status: state.Status, Token: token})
}

// CurrentCard handles GET /v1/sessions/{id}/dilemmas/current
func (h *SessionHandler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.sessionSvc.CurrentCard(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// DecisionRequest is the button-path decision body.
type DecisionRequest struct {
	DilemmaID int  `json:"dilemmaId"`
	Agreed    bool `json:"agreed"`
}

// SubmitDecision handles POST /v1/sessions/{id}/decisions
func (h *SessionHandler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.sessionSvc.SubmitDecision(r.Context(), mux.Vars(r)["id"], req.DilemmaID, req.Agreed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// Restart handles POST /v1/sessions/{id}/restart
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Restart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": session.ID,
		"position":  session.Position,
	})
}

// Result handles GET /v1/sessions/{id}/result
func (h *SessionHandler) Result(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionSvc.Result(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ExportContact handles GET /v1/sessions/{id}/contact/export
func (h *SessionHandler) ExportContact(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.sessionSvc.ExportContact(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writeServiceError maps service sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cache.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrMissingSession):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":    "no contact data in session",
			"redirect": "/",
		})
	case errors.Is(err, service.ErrUnknownProfile):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":    "profile not found",
			"redirect": "/quotes",
		})
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Dit e-mailadres is al geregistreerd.")
	case errors.Is(err, form.ErrSubmitInFlight),
		errors.Is(err, form.ErrAlreadySubmitted),
		errors.Is(err, service.ErrOutOfOrder),
		errors.Is(err, service.ErrDeckExhausted),
		errors.Is(err, service.ErrQuizIncomplete),
		errors.Is(err, service.ErrNotInteractive):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadGateway, "Er is een fout opgetreden bij het verwerken. Probeer het later opnieuw.")
	}
}
