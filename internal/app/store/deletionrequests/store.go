// internal/app/store/deletionrequests/store.go
package deletionrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/runpro9ja/adminhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Statuses
const (
	StatusReceived  = "received"
	StatusProcessed = "processed"
)

// DedupWindow is how long a repeat request for the same email returns the
// earlier, still-open request instead of creating another.
const DedupWindow = 24 * time.Hour

// ErrNotFound is returned when no request matches.
var ErrNotFound = errors.New("deletion request not found")

// Store manages account deletion requests submitted from the public form.
type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

// New creates a new deletion request Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("deletion_requests"), now: time.Now}
}

// EnsureIndexes creates the reference and email lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email_ci", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// NewReference returns a short human-readable reference code.
func NewReference() string {
	return "DR-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Input is the validated form submission.
type Input struct {
	Email   string
	Reason  string
	Message string
	IP      string
}

// Create stores a new request, or returns the open request for the same
// email made within DedupWindow. created is false in the latter case.
func (s *Store) Create(ctx context.Context, in Input) (req models.DeletionRequest, created bool, err error) {
	emailCI := text.Fold(strings.TrimSpace(in.Email))

	existing, err := s.recentOpen(ctx, emailCI)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.DeletionRequest{}, false, err
	}

	req = models.DeletionRequest{
		Email:     strings.TrimSpace(in.Email),
		EmailCI:   emailCI,
		Reason:    in.Reason,
		Message:   in.Message,
		Status:    StatusReceived,
		IP:        in.IP,
		CreatedAt: s.now().UTC(),
	}
	// A reference collision is astronomically unlikely; retry a few times
	// rather than surface it.
	for attempt := 0; attempt < 3; attempt++ {
		req.ID = primitive.NewObjectID()
		req.Reference = NewReference()
		_, err = s.c.InsertOne(ctx, req)
		if err == nil {
			return req, true, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.DeletionRequest{}, false, fmt.Errorf("insert deletion request: %w", err)
		}
	}
	return models.DeletionRequest{}, false, fmt.Errorf("insert deletion request: %w", err)
}

func (s *Store) recentOpen(ctx context.Context, emailCI string) (models.DeletionRequest, error) {
	var out models.DeletionRequest
	err := s.c.FindOne(ctx, bson.M{
		"email_ci":   emailCI,
		"status":     StatusReceived,
		"created_at": bson.M{"$gte": s.now().UTC().Add(-DedupWindow)},
	}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// GetByReference looks a request up by its reference code.
func (s *Store) GetByReference(ctx context.Context, ref string) (models.DeletionRequest, error) {
	var out models.DeletionRequest
	err := s.c.FindOne(ctx, bson.M{"reference": strings.ToUpper(strings.TrimSpace(ref))}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// ListFilter selects requests for the staff list.
type ListFilter struct {
	Status string
	Limit  int64
	Offset int64
}

// List returns requests newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.DeletionRequest, error) {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	cur, err := s.c.Find(ctx, q, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(f.Offset))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DeletionRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkProcessed flags a request as handled.
func (s *Store) MarkProcessed(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": StatusProcessed}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
