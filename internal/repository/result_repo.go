package repository

import (
	"context"
	"errors"
	"menteazul/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateSession means a result was already stored for the session
var ErrDuplicateSession = errors.New("result already stored for session")

// ResultRepo is the append-only store of questionnaire results
type ResultRepo interface {
	// Create stores result. A second result for the same non-empty SessionID
	// fails with ErrDuplicateSession.
	Create(ctx context.Context, result *model.Result) (string, error)
	GetByID(ctx context.Context, id string) (*model.Result, error)
	GetBySession(ctx context.Context, sessionID string) (*model.Result, error)
	// ListByUser returns results newest first; limit <= 0 means all
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Result, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("qchat_results"),
	}
}

func (r *resultRepo) Create(ctx context.Context, result *model.Result) (string, error) {
	res, err := r.collection.InsertOne(ctx, result)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateSession
	}
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	result.ID = oid.Hex()
	return result.ID, nil
}

func (r *resultRepo) GetByID(ctx context.Context, id string) (*model.Result, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *resultRepo) GetBySession(ctx context.Context, sessionID string) (*model.Result, error) {
	if sessionID == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"sessionId": sessionID})
}

func (r *resultRepo) findOne(ctx context.Context, filter bson.M) (*model.Result, error) {
	var result model.Result
	err := r.collection.FindOne(ctx, filter).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*model.Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
