package repository

import (
	"context"
	"menteazul/internal/platform/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *logger.Logger) {
	createIndex(ctx, log, db.Collection("users"), bson.D{{Key: "email", Value: 1}}, options.Index().SetUnique(true))
	createIndex(ctx, log, db.Collection("qchat_results"), bson.D{
		{Key: "userId", Value: 1},
		{Key: "completedAt", Value: -1},
	}, options.Index())
	// one result per guided session; direct submissions carry no sessionId
	createIndex(ctx, log, db.Collection("qchat_results"), bson.D{{Key: "sessionId", Value: 1}},
		options.Index().SetUnique(true).SetSparse(true))

	log.Info("mongo indexes ensured")
}

func createIndex(ctx context.Context, log *logger.Logger, coll *mongo.Collection, keys bson.D, opts *options.IndexOptions) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		log.Warn("failed to create index", "collection", coll.Name(), "error", err)
	}
}
