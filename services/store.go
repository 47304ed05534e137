package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"dept-portal/config"
)

const storeTimeout = 10 * time.Second

// Store wraps the portal's MongoDB collections. All resource documents carry
// a string "id" field alongside the driver's _id, kept for compatibility with
// the data the portal was migrated from.
type Store struct {
	db         *mongo.Database
	courses    *mongo.Collection
	notices    *mongo.Collection
	schedule   *mongo.Collection
	syllabus   *mongo.Collection
	complaints *mongo.Collection
	opinions   *mongo.Collection
	messages   *mongo.Collection
	users      *mongo.Collection
	settings   *mongo.Collection
	auditLogs  *mongo.Collection
	deletions  *mongo.Collection
}

func NewStore(cfg *config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	return &Store{
		db:         db,
		courses:    db.Collection("courses"),
		notices:    db.Collection("notices"),
		schedule:   db.Collection("schedule"),
		syllabus:   db.Collection("syllabus"),
		complaints: db.Collection("complaints"),
		opinions:   db.Collection("opinions"),
		messages:   db.Collection("messages"),
		users:      db.Collection("users"),
		settings:   db.Collection("settings"),
		auditLogs:  db.Collection("audit_logs"),
		deletions:  db.Collection("deletion_requests"),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
