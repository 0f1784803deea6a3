package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bimatch/internal/model"
)

var (
	// ErrDuplicateEmail means a participant with the same email address
	// already exists (unique index on emailadres).
	ErrDuplicateEmail = errors.New("email address already registered")
	// ErrNotFound means no participant matches the given identity.
	ErrNotFound = errors.New("participant not found")
)

// ParticipantRepo is the record-store boundary: create a contact record,
// later attach the quiz result to it. Callers only interpret the two
// sentinel errors above; everything else is a gateway failure.
type ParticipantRepo interface {
	Create(ctx context.Context, p *model.Participant) error
	AttachResult(ctx context.Context, email, result string) error
	GetByEmail(ctx context.Context, email string) (*model.Participant, error)
}

type participantRepo struct {
	collection *mongo.Collection
}

// NewParticipantRepo creates a participant repository on the given
// database.
func NewParticipantRepo(db *mongo.Database) ParticipantRepo {
	return &participantRepo{
		collection: db.Collection("participants"),
	}
}

// EnsureIndexes creates the unique email index the conflict detection
// relies on. Run once at bootstrap (cmd/seed).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("participants").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emailadres", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *participantRepo) Create(ctx context.Context, p *model.Participant) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	result, err := r.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *participantRepo) AttachResult(ctx context.Context, email, result string) error {
	update := bson.M{"$set": bson.M{
		"resultaat": result,
		"updatedAt": time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"emailadres": email}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *participantRepo) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	var p model.Participant
	err := r.collection.FindOne(ctx, bson.M{"emailadres": email}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
