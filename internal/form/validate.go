// Package form implements the contact form: per-field validation and
// the editing/submitting/submitted state machine.
package form

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"bimatch/internal/model"
)

// Validation messages shown inline per field.
const (
	MsgFirstNameTooShort   = "Voornaam moet minimaal 2 tekens bevatten"
	MsgLastNameTooShort    = "Achternaam moet minimaal 2 tekens bevatten"
	MsgEmailInvalid        = "Ongeldig e-mailadres"
	MsgPhoneNotTenDigits   = "Telefoonnummer moet exact 10 cijfers bevatten"
	MsgCompanyNameTooShort = "Bedrijfsnaam moet minimaal 2 tekens bevatten"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Outcome is the result of validating one field.
type Outcome struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// SanitizePhone strips non-digit characters and caps the result at 10
// characters. Phone validation always runs on the sanitized value.
func SanitizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		digits = digits[:10]
	}
	return digits
}

// ValidateField validates a single named field. It is a pure function
// of (field, value); unknown fields are accepted.
func ValidateField(field, value string) Outcome {
	switch field {
	case model.FieldFirstName:
		if utf8.RuneCountInString(strings.TrimSpace(value)) < 2 {
			return Outcome{Message: MsgFirstNameTooShort}
		}
	case model.FieldLastName:
		if utf8.RuneCountInString(strings.TrimSpace(value)) < 2 {
			return Outcome{Message: MsgLastNameTooShort}
		}
	case model.FieldEmail:
		if !emailPattern.MatchString(value) {
			return Outcome{Message: MsgEmailInvalid}
		}
	case model.FieldPhoneNumber:
		if !phonePattern.MatchString(value) {
			return Outcome{Message: MsgPhoneNotTenDigits}
		}
	case model.FieldCompanyName:
		if utf8.RuneCountInString(strings.TrimSpace(value)) < 2 {
			return Outcome{Message: MsgCompanyNameTooShort}
		}
	}
	return Outcome{Valid: true}
}

// ValidateAll runs every field rule unconditionally and returns the
// aggregated error set. An empty FieldErrors means the form is valid.
func ValidateAll(values model.ContactRecord) model.FieldErrors {
	var errs model.FieldErrors
	for _, field := range []string{
		model.FieldFirstName,
		model.FieldLastName,
		model.FieldEmail,
		model.FieldPhoneNumber,
		model.FieldCompanyName,
	} {
		if out := ValidateField(field, values.Get(field)); !out.Valid {
			errs.Set(field, out.Message)
		}
	}
	return errs
}
