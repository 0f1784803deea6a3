package model

import "time"

// Field names of the contact form. Handlers and the validator agree on
// these strings; anything else is an unknown field.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldCompanyName = "companyName"
)

// ContactRecord is the contact payload captured by the form step.
type ContactRecord struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	CompanyName string `json:"companyName"`
}

// Get returns the value of a named field, or "" for unknown names.
func (c ContactRecord) Get(field string) string {
	switch field {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldEmail:
		return c.Email
	case FieldPhoneNumber:
		return c.PhoneNumber
	case FieldCompanyName:
		return c.CompanyName
	}
	return ""
}

// Set writes the value of a named field. Unknown names are ignored.
func (c *ContactRecord) Set(field, value string) {
	switch field {
	case FieldFirstName:
		c.FirstName = value
	case FieldLastName:
		c.LastName = value
	case FieldEmail:
		c.Email = value
	case FieldPhoneNumber:
		c.PhoneNumber = value
	case FieldCompanyName:
		c.CompanyName = value
	}
}

// FieldErrors holds at most one validation message per known field.
// The shape is fixed: no dynamic keys, an empty string means valid.
type FieldErrors struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// Any reports whether at least one field carries an error.
func (e FieldErrors) Any() bool {
	return e.FirstName != "" || e.LastName != "" || e.Email != "" ||
		e.PhoneNumber != "" || e.CompanyName != ""
}

// Set writes the message slot for a named field.
func (e *FieldErrors) Set(field, message string) {
	switch field {
	case FieldFirstName:
		e.FirstName = message
	case FieldLastName:
		e.LastName = message
	case FieldEmail:
		e.Email = message
	case FieldPhoneNumber:
		e.PhoneNumber = message
	case FieldCompanyName:
		e.CompanyName = message
	}
}

// Get returns the message slot for a named field.
func (e FieldErrors) Get(field string) string {
	switch field {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldEmail:
		return e.Email
	case FieldPhoneNumber:
		return e.PhoneNumber
	case FieldCompanyName:
		return e.CompanyName
	}
	return ""
}

// Participant is the persisted respondent record. The bson field names
// match the production participants collection (Dutch column names).
type Participant struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FirstName   string    `json:"firstName" bson:"voornaam"`
	LastName    string    `json:"lastName" bson:"achternaam"`
	Email       string    `json:"email" bson:"emailadres"`
	PhoneNumber string    `json:"phoneNumber" bson:"telefoonnummer"`
	CompanyName string    `json:"companyName" bson:"bedrijfsnaam"`
	Result      string    `json:"result,omitempty" bson:"resultaat,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
