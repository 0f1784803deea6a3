package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FormStatus is the submission state of the contact form.
type FormStatus string

const (
	FormEditing    FormStatus = "editing"
	FormSubmitting FormStatus = "submitting"
	FormSubmitted  FormStatus = "submitted"
)

// FormState is the server-held state of the contact step: the current
// field values, at most one error per field, and the submission status.
type FormState struct {
	Status FormStatus    `json:"status"`
	Values ContactRecord `json:"values"`
	Errors FieldErrors   `json:"errors"`
}

// NewFormState returns an empty form in the editing state.
func NewFormState() FormState {
	return FormState{Status: FormEditing}
}

// QuizSession is the full per-session state held in Redis: the contact
// form, the decision sequence, the running tally and the deck position.
// Email is the handoff reference captured at contact submission; it is
// cleared once the result has been attached.
type QuizSession struct {
	ID            string     `json:"id"`
	Form          FormState  `json:"form"`
	Email         string     `json:"email,omitempty"`
	Decisions     []Decision `json:"decisions"`
	Tally         Tally      `json:"tally"`
	Position      int        `json:"position"` // index of the current dilemma
	InteractiveAt time.Time  `json:"interactiveAt"`
	Attached      bool       `json:"attached"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// SessionClaims are JWT claims for the session token issued at contact
// submission. The token is the reference that correlates the later
// result attachment with the created record.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
