package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bimatch/internal/cache"
	"bimatch/internal/form"
	"bimatch/internal/gesture"
	"bimatch/internal/model"
	"bimatch/internal/quiz"
	"bimatch/internal/repository"
)

// fakeSessionCache stores sessions in memory, round-tripping through
// JSON like the Redis-backed cache does.
type fakeSessionCache struct {
	m map[string][]byte
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{m: map[string][]byte{}}
}

func (c *fakeSessionCache) Set(ctx context.Context, session *model.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	c.m[session.ID] = data
	return nil
}

func (c *fakeSessionCache) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	data, ok := c.m[id]
	if !ok {
		return nil, cache.ErrSessionNotFound
	}
	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *fakeSessionCache) Delete(ctx context.Context, id string) error {
	delete(c.m, id)
	return nil
}

// fakeParticipantRepo records store calls and fails on demand.
type fakeParticipantRepo struct {
	createErr error
	attachErr error
	created   []*model.Participant
	attached  map[string]string
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{attached: map[string]string{}}
}

func (r *fakeParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, p)
	return nil
}

func (r *fakeParticipantRepo) AttachResult(ctx context.Context, email, result string) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	r.attached[email] = result
	return nil
}

func (r *fakeParticipantRepo) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	for _, p := range r.created {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestService(repo repository.ParticipantRepo) (*SessionService, *time.Time) {
	clock := time.Unix(1700000000, 0)
	svc := NewSessionService(newFakeSessionCache(), repo, NewTokenService("test-secret"), "https://cdn.example.com/")
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func validContact() *model.ContactRecord {
	return &model.ContactRecord{
		FirstName:   "Jan",
		LastName:    "Bakker",
		Email:       "jan@voxtur.nl",
		PhoneNumber: "06-1234 5678",
		CompanyName: "VOXTUR",
	}
}

func TestSubmitContactHappyPath(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	state, token, err := svc.SubmitContact(ctx, session.ID, validContact())
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	if state.Status != model.FormSubmitted {
		t.Fatalf("status=%q, want submitted", state.Status)
	}
	if token == "" {
		t.Fatal("expected session token")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created=%d, want 1", len(repo.created))
	}
	if repo.created[0].PhoneNumber != "0612345678" {
		t.Fatalf("stored phone=%q, want sanitized", repo.created[0].PhoneNumber)
	}

	// The handoff email survives in the session.
	stored, err := svc.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Email != "jan@voxtur.nl" {
		t.Fatalf("session email=%q", stored.Email)
	}
}

func TestSubmitContactValidationFailure(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	session, _ := svc.Start(ctx)
	payload := validContact()
	payload.LastName = "B"

	state, _, err := svc.SubmitContact(ctx, session.ID, payload)
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("err=%v, want form.ErrInvalid", err)
	}
	if state.Errors.LastName == "" {
		t.Fatal("expected lastName error")
	}
	if len(repo.created) != 0 {
		t.Fatal("store called despite invalid form")
	}
	if state.Status != model.FormEditing {
		t.Fatalf("status=%q, want editing", state.Status)
	}
}

func TestSubmitContactConflictVsTransient(t *testing.T) {
	ctx := context.Background()

	// Duplicate email surfaces the conflict kind.
	repo := newFakeParticipantRepo()
	repo.createErr = repository.ErrDuplicateEmail
	svc, _ := newTestService(repo)
	session, _ := svc.Start(ctx)
	state, _, err := svc.SubmitContact(ctx, session.ID, validContact())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err=%v, want ErrEmailTaken", err)
	}
	if state.Status != model.FormEditing {
		t.Fatalf("status=%q, want editing after conflict", state.Status)
	}

	// Any other store failure stays generic.
	repo = newFakeParticipantRepo()
	repo.createErr = errors.New("connection reset")
	svc, _ = newTestService(repo)
	session, _ = svc.Start(ctx)
	state, _, err = svc.SubmitContact(ctx, session.ID, validContact())
	if err == nil || errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err=%v, want generic failure", err)
	}
	if state.Status != model.FormEditing {
		t.Fatalf("status=%q, want editing after failure", state.Status)
	}
}

func TestDecisionOrderingAndCooldown(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, clock := newTestService(repo)
	ctx := context.Background()

	session, _ := svc.Start(ctx)

	card, err := svc.CurrentCard(ctx, session.ID)
	if err != nil {
		t.Fatalf("CurrentCard: %v", err)
	}
	if card.DilemmaID != quiz.Dilemmas[0].ID {
		t.Fatalf("first card=%d, want %d", card.DilemmaID, quiz.Dilemmas[0].ID)
	}
	if card.ImageURL != "https://cdn.example.com/"+quiz.Dilemmas[0].Image {
		t.Fatalf("imageURL=%q", card.ImageURL)
	}

	// Decision for a later dilemma is out of order.
	if _, err := svc.SubmitDecision(ctx, session.ID, quiz.Dilemmas[1].ID, true); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("err=%v, want ErrOutOfOrder", err)
	}

	outcome, err := svc.SubmitDecision(ctx, session.ID, card.DilemmaID, true)
	if err != nil {
		t.Fatalf("SubmitDecision: %v", err)
	}
	if !outcome.Matched || outcome.Completed {
		t.Fatalf("outcome=%+v", outcome)
	}
	if outcome.Next == nil || outcome.Next.DilemmaID != quiz.Dilemmas[1].ID {
		t.Fatalf("next=%+v, want dilemma %d", outcome.Next, quiz.Dilemmas[1].ID)
	}

	// A second decision during the cooldown is ignored.
	if _, err := svc.SubmitDecision(ctx, session.ID, quiz.Dilemmas[1].ID, true); !errors.Is(err, ErrNotInteractive) {
		t.Fatalf("err=%v, want ErrNotInteractive", err)
	}

	*clock = clock.Add(gesture.Cooldown)
	if _, err := svc.SubmitDecision(ctx, session.ID, quiz.Dilemmas[1].ID, false); err != nil {
		t.Fatalf("post-cooldown decision: %v", err)
	}
}

func completeQuiz(t *testing.T, svc *SessionService, clock *time.Time, id string, agreed bool) {
	t.Helper()
	ctx := context.Background()
	for _, d := range quiz.Dilemmas {
		*clock = clock.Add(gesture.Cooldown)
		if _, err := svc.SubmitDecision(ctx, id, d.ID, agreed); err != nil {
			t.Fatalf("decision %d: %v", d.ID, err)
		}
	}
}

func TestResultAttachesOnce(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, clock := newTestService(repo)
	ctx := context.Background()

	session, _ := svc.Start(ctx)
	if _, _, err := svc.SubmitContact(ctx, session.ID, validContact()); err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}

	// Result before the deck is exhausted is rejected.
	if _, err := svc.Result(ctx, session.ID); !errors.Is(err, ErrQuizIncomplete) {
		t.Fatalf("err=%v, want ErrQuizIncomplete", err)
	}

	completeQuiz(t, svc, clock, session.ID, true)

	view, err := svc.Result(ctx, session.ID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	// All swiped right: BI-hunter carries the most likeProfile slots.
	if view.Profile.ID != model.ProfileBIHunter {
		t.Fatalf("winner=%s, want BI-hunter", view.Profile.ID)
	}
	if repo.attached["jan@voxtur.nl"] != "BI-hunter" {
		t.Fatalf("attached=%v", repo.attached)
	}

	// The handoff state is cleared after the successful attachment.
	stored, _ := svc.Get(ctx, session.ID)
	if stored.Email != "" || !stored.Attached {
		t.Fatalf("handoff not cleared: email=%q attached=%v", stored.Email, stored.Attached)
	}

	// A second view does not attach again.
	if _, err := svc.Result(ctx, session.ID); err != nil {
		t.Fatalf("second Result: %v", err)
	}
	if len(repo.attached) != 1 {
		t.Fatalf("attached twice: %v", repo.attached)
	}
}

func TestResultWithoutContactNeverCallsStore(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, clock := newTestService(repo)
	ctx := context.Background()

	session, _ := svc.Start(ctx)
	completeQuiz(t, svc, clock, session.ID, true)

	if _, err := svc.Result(ctx, session.ID); !errors.Is(err, ErrMissingSession) {
		t.Fatalf("err=%v, want ErrMissingSession", err)
	}
	if len(repo.attached) != 0 {
		t.Fatalf("attach called without contact: %v", repo.attached)
	}
}

func TestResultAttachFailureRetainsHandoff(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, clock := newTestService(repo)
	ctx := context.Background()

	session, _ := svc.Start(ctx)
	if _, _, err := svc.SubmitContact(ctx, session.ID, validContact()); err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	completeQuiz(t, svc, clock, session.ID, false)

	repo.attachErr = errors.New("service unavailable")
	if _, err := svc.Result(ctx, session.ID); err == nil {
		t.Fatal("expected attach failure")
	}

	// Email retained so the flow can be retried.
	stored, _ := svc.Get(ctx, session.ID)
	if stored.Email != "jan@voxtur.nl" {
		t.Fatalf("email=%q, want retained", stored.Email)
	}

	repo.attachErr = nil
	if _, err := svc.Result(ctx, session.ID); err != nil {
		t.Fatalf("retry Result: %v", err)
	}
	if repo.attached["jan@voxtur.nl"] == "" {
		t.Fatal("retry did not attach")
	}
}

func TestRestartResetsQuizOnly(t *testing.T) {
	repo := newFakeParticipantRepo()
	svc, clock := newTestService(repo)
	ctx := context.Background()

	session, _ := svc.Start(ctx)
	if _, _, err := svc.SubmitContact(ctx, session.ID, validContact()); err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}
	completeQuiz(t, svc, clock, session.ID, true)

	restarted, err := svc.Restart(ctx, session.ID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if restarted.Position != 0 || len(restarted.Decisions) != 0 {
		t.Fatalf("quiz not reset: %+v", restarted)
	}
	for _, p := range model.ProfileOrder {
		if restarted.Tally[p] != 0 {
			t.Fatalf("tally[%s]=%v, want 0", p, restarted.Tally[p])
		}
	}
	if restarted.Email != "jan@voxtur.nl" {
		t.Fatal("contact handoff lost on restart")
	}
}

func TestProfileLookup(t *testing.T) {
	svc, _ := newTestService(newFakeParticipantRepo())

	profile, err := svc.Profile("Excel-ex")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Title != "Excel-ex" {
		t.Fatalf("title=%q", profile.Title)
	}

	if _, err := svc.Profile("Sheet Sniffer"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("err=%v, want ErrUnknownProfile", err)
	}
}

func TestUnknownSessionSurfacesNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeParticipantRepo())
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, cache.ErrSessionNotFound) {
		t.Fatalf("err=%v, want ErrSessionNotFound", err)
	}
}
