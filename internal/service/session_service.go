package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"bimatch/internal/cache"
	"bimatch/internal/form"
	"bimatch/internal/gesture"
	"bimatch/internal/model"
	"bimatch/internal/quiz"
	"bimatch/internal/repository"
	"bimatch/internal/scoring"
)

var (
	// ErrEmailTaken means the contact email is already registered.
	ErrEmailTaken = errors.New("email address already registered")
	// ErrMissingSession means the result step ran without a contact
	// record created in this session; the store is never called.
	ErrMissingSession = errors.New("no contact data in session")
	// ErrUnknownProfile means a profile ID outside the fixed set.
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrQuizIncomplete means the deck has not been exhausted yet.
	ErrQuizIncomplete = errors.New("quiz not completed")
	// ErrDeckExhausted means a decision arrived after the last dilemma.
	ErrDeckExhausted = errors.New("no dilemmas left")
	// ErrOutOfOrder means a decision referenced a dilemma other than
	// the current one.
	ErrOutOfOrder = errors.New("decision out of dilemma order")
	// ErrNotInteractive means a decision arrived during the exit
	// cooldown of the previous card and was ignored.
	ErrNotInteractive = errors.New("card not interactive yet")
)

// SessionService orchestrates one quiz session: the contact form, the
// decision sequence, and the result attachment. All per-session state
// lives in the session cache; the participant store is only touched at
// contact creation and result attachment.
type SessionService struct {
	sessions     cache.SessionCache
	participants repository.ParticipantRepo
	tokens       *TokenService
	assetBaseURL string
	now          func() time.Time
}

// NewSessionService creates a session service.
func NewSessionService(
	sessions cache.SessionCache,
	participants repository.ParticipantRepo,
	tokens *TokenService,
	assetBaseURL string,
) *SessionService {
	return &SessionService{
		sessions:     sessions,
		participants: participants,
		tokens:       tokens,
		assetBaseURL: assetBaseURL,
		now:          time.Now,
	}
}

// CardView is the current dilemma as presented to the client.
type CardView struct {
	DilemmaID int    `json:"dilemmaId"`
	Text      string `json:"text"`
	Persona   string `json:"persona"`
	ImageURL  string `json:"imageUrl"`
	Position  int    `json:"position"` // 1-based
	Total     int    `json:"total"`
}

// DecisionOutcome reports one folded decision.
type DecisionOutcome struct {
	Decision      model.Decision `json:"decision"`
	Matched       bool           `json:"matched"` // agree path, drives the match overlay
	Completed     bool           `json:"completed"`
	InteractiveAt time.Time      `json:"interactiveAt"`
	Next          *CardView      `json:"next,omitempty"`
}

// ResultView is the resolved profile plus its descriptive content.
type ResultView struct {
	Profile model.Profile `json:"profile"`
	Tally   model.Tally   `json:"tally"`
}

// Start creates a fresh session: empty form, zero tally, deck at the
// first dilemma.
func (s *SessionService) Start(ctx context.Context) (*model.QuizSession, error) {
	session := &model.QuizSession{
		ID:        uuid.New().String(),
		Form:      model.NewFormState(),
		Tally:     model.NewTally(),
		CreatedAt: s.now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Get loads a session by ID.
func (s *SessionService) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	return s.sessions.Get(ctx, id)
}

// SetField updates and re-validates a single form field.
func (s *SessionService) SetField(ctx context.Context, id, field, value string) (*model.FormState, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := form.SetField(&session.Form, field, value); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &session.Form, nil
}

// SubmitContact runs the full form submission: every field re-validated,
// then the contact record created in the store. On success the email is
// kept as the session's handoff reference and a session token issued.
// Validation failure returns form.ErrInvalid with the messages on the
// returned form state; a duplicate email maps to ErrEmailTaken; any
// other store failure passes through after the form returns to editing.
func (s *SessionService) SubmitContact(ctx context.Context, id string, payload *model.ContactRecord) (*model.FormState, string, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if payload != nil {
		for _, field := range []string{
			model.FieldFirstName,
			model.FieldLastName,
			model.FieldEmail,
			model.FieldPhoneNumber,
			model.FieldCompanyName,
		} {
			if _, err := form.SetField(&session.Form, field, payload.Get(field)); err != nil {
				return &session.Form, "", err
			}
		}
	}

	if err := form.BeginSubmit(&session.Form); err != nil {
		if saveErr := s.sessions.Set(ctx, session); saveErr != nil {
			log.Printf("submit contact: store session %s: %v", id, saveErr)
		}
		return &session.Form, "", err
	}

	// Persist the submitting status before the store call so a
	// re-entrant submit on the same session is rejected.
	if err := s.sessions.Set(ctx, session); err != nil {
		form.ResolveSubmit(&session.Form, false)
		return &session.Form, "", fmt.Errorf("store session: %w", err)
	}

	participant := &model.Participant{
		FirstName:   session.Form.Values.FirstName,
		LastName:    session.Form.Values.LastName,
		Email:       session.Form.Values.Email,
		PhoneNumber: session.Form.Values.PhoneNumber,
		CompanyName: session.Form.Values.CompanyName,
	}
	createErr := s.participants.Create(ctx, participant)

	form.ResolveSubmit(&session.Form, createErr == nil)
	if createErr == nil {
		session.Email = participant.Email
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		log.Printf("submit contact: store session %s: %v", id, err)
	}

	if errors.Is(createErr, repository.ErrDuplicateEmail) {
		return &session.Form, "", ErrEmailTaken
	}
	if createErr != nil {
		log.Printf("submit contact: create participant: %v", createErr)
		return &session.Form, "", fmt.Errorf("create participant: %w", createErr)
	}

	token, err := s.tokens.Issue(session.ID, session.Email)
	if err != nil {
		return &session.Form, "", fmt.Errorf("issue session token: %w", err)
	}
	return &session.Form, token, nil
}

// CurrentCard returns the dilemma the session is positioned at, or
// ErrDeckExhausted when every dilemma has been decided.
func (s *SessionService) CurrentCard(ctx context.Context, id string) (*CardView, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.card(session)
}

func (s *SessionService) card(session *model.QuizSession) (*CardView, error) {
	if session.Position >= len(quiz.Dilemmas) {
		return nil, ErrDeckExhausted
	}
	d := quiz.Dilemmas[session.Position]
	return &CardView{
		DilemmaID: d.ID,
		Text:      d.Text,
		Persona:   d.Persona,
		ImageURL:  s.imageURL(d.Image),
		Position:  session.Position + 1,
		Total:     len(quiz.Dilemmas),
	}, nil
}

func (s *SessionService) imageURL(path string) string {
	base := strings.TrimSuffix(s.assetBaseURL, "/")
	return base + "/" + path
}

// SubmitDecision folds one decision into the tally. Decisions must
// reference the current dilemma (one per dilemma, ascending order);
// decisions arriving during the previous card's cooldown are ignored
// with ErrNotInteractive.
func (s *SessionService) SubmitDecision(ctx context.Context, id string, dilemmaID int, agreed bool) (*DecisionOutcome, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Position >= len(quiz.Dilemmas) {
		return nil, ErrDeckExhausted
	}
	if s.now().Before(session.InteractiveAt) {
		return nil, ErrNotInteractive
	}

	current := quiz.Dilemmas[session.Position]
	if dilemmaID != current.ID {
		return nil, ErrOutOfOrder
	}

	decision := model.Decision{DilemmaID: dilemmaID, Agreed: agreed}
	scoring.Fold(session.Tally, decision, current)
	session.Decisions = append(session.Decisions, decision)
	session.Position++
	session.InteractiveAt = s.now().Add(gesture.Cooldown)

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	outcome := &DecisionOutcome{
		Decision:      decision,
		Matched:       agreed,
		Completed:     session.Position >= len(quiz.Dilemmas),
		InteractiveAt: session.InteractiveAt,
	}
	if !outcome.Completed {
		next, _ := s.card(session)
		outcome.Next = next
	}
	return outcome, nil
}

// Result resolves the winning profile and attaches it to the contact
// record created earlier in this session. The handoff state is cleared
// on success and retained on failure so the user can retry. Without a
// prior contact submission the store is never called.
func (s *SessionService) Result(ctx context.Context, id string) (*ResultView, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Position < len(quiz.Dilemmas) {
		return nil, ErrQuizIncomplete
	}

	winner := scoring.Resolve(session.Tally)
	profile := quiz.ProfileByID(winner)
	if profile == nil {
		return nil, ErrUnknownProfile
	}

	view := &ResultView{Profile: *profile, Tally: session.Tally.Clone()}
	if session.Attached {
		return view, nil
	}
	if session.Email == "" {
		return nil, ErrMissingSession
	}

	if err := s.participants.AttachResult(ctx, session.Email, profile.Title); err != nil {
		log.Printf("attach result: session %s: %v", id, err)
		return nil, fmt.Errorf("attach result: %w", err)
	}

	// Attached exactly once: clear the handoff state.
	session.Attached = true
	session.Email = ""
	session.Form.Values = model.ContactRecord{}
	if err := s.sessions.Set(ctx, session); err != nil {
		log.Printf("result: store session %s: %v", id, err)
	}
	return view, nil
}

// Restart resets the quiz portion of a session: fresh tally, empty
// decision sequence, deck back at the first dilemma. The contact step
// is untouched.
func (s *SessionService) Restart(ctx context.Context, id string) (*model.QuizSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Decisions = nil
	session.Tally = model.NewTally()
	session.Position = 0
	session.InteractiveAt = time.Time{}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Profile returns the definition for a profile ID, or ErrUnknownProfile
// so the caller can redirect to the quiz entry point.
func (s *SessionService) Profile(id string) (*model.Profile, error) {
	profile := quiz.ProfileByID(model.ProfileID(id))
	if profile == nil {
		return nil, ErrUnknownProfile
	}
	return profile, nil
}
