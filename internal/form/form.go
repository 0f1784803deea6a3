package form

import (
	"errors"

	"bimatch/internal/model"
)

var (
	// ErrInvalid means full validation rejected the submission; the
	// per-field messages are on the form state.
	ErrInvalid = errors.New("form has invalid fields")
	// ErrSubmitInFlight means a submission is already being processed.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrAlreadySubmitted means the form has already been submitted.
	ErrAlreadySubmitted = errors.New("form already submitted")
)

// SetField updates one field: the phone number is sanitized first, then
// only that field is re-validated. Other fields keep their state. The
// form stays in the editing status.
func SetField(f *model.FormState, field, value string) (Outcome, error) {
	switch f.Status {
	case model.FormSubmitting:
		return Outcome{}, ErrSubmitInFlight
	case model.FormSubmitted:
		return Outcome{}, ErrAlreadySubmitted
	}

	if field == model.FieldPhoneNumber {
		value = SanitizePhone(value)
	}
	f.Values.Set(field, value)

	out := ValidateField(field, value)
	if out.Valid {
		f.Errors.Set(field, "")
	} else {
		f.Errors.Set(field, out.Message)
	}
	return out, nil
}

// BeginSubmit re-validates every field unconditionally. When all pass
// the form moves to submitting and the gateway call may start; when any
// fail the form stays editable with the aggregated errors and ErrInvalid
// is returned. Re-entry while submitting is rejected.
func BeginSubmit(f *model.FormState) error {
	switch f.Status {
	case model.FormSubmitting:
		return ErrSubmitInFlight
	case model.FormSubmitted:
		return ErrAlreadySubmitted
	}

	f.Errors = ValidateAll(f.Values)
	if f.Errors.Any() {
		return ErrInvalid
	}
	f.Status = model.FormSubmitting
	return nil
}

// ResolveSubmit ends the submitting state: submitted on success, back
// to editing on failure. Submitting always resolves to one of the two.
func ResolveSubmit(f *model.FormState, ok bool) {
	if f.Status != model.FormSubmitting {
		return
	}
	if ok {
		f.Status = model.FormSubmitted
	} else {
		f.Status = model.FormEditing
	}
}
