package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"bimatch/internal/model"
)

// ExportContactCSV renders one contact record as a two-line CSV: the
// localized header row and one data row.
func ExportContactCSV(record model.ContactRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"Voornaam", "Achternaam", "Email", "Telefoonnummer", "Bedrijfsnaam"})
	if err := w.Write([]string{
		record.FirstName,
		record.LastName,
		record.Email,
		record.PhoneNumber,
		record.CompanyName,
	}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportFilename names the download after the current date and time.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("contact-form-%s.csv", now.Format("2006-01-02-15-04-05"))
}

// ExportContact renders the session's contact data as a downloadable
// CSV. Only available while the handoff state is still present.
func (s *SessionService) ExportContact(ctx context.Context, id string) ([]byte, string, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if session.Form.Status != model.FormSubmitted || session.Email == "" {
		return nil, "", ErrMissingSession
	}

	data, err := ExportContactCSV(session.Form.Values)
	if err != nil {
		return nil, "", fmt.Errorf("render csv: %w", err)
	}
	return data, ExportFilename(s.now()), nil
}
