package mongodb

import (
	"context"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connector yields the shared database handle; see database.MongoProvider.
type Connector interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

func collection(ctx context.Context, conn Connector, name string) (*mongo.Collection, error) {
	db, err := conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// EnsureIndexes creates the indexes through conn.
func EnsureIndexes(ctx context.Context, conn Connector) error {
	db, err := conn.Database(ctx)
	if err != nil {
		return err
	}
	return CreateIndexes(ctx, db)
}

// CreateIndexes creates the unique email index and the ledger indexes. The
// compound unique index is what settles two concurrent first interactions
// from the same visitor.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(profilesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}

	_, err = db.Collection(interactionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "profileId", Value: 1},
				{Key: "visitorIp", Value: 1},
				{Key: "type", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_profile_visitor_type"),
		},
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetName("profile_type"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create interaction indexes: %w", err)
	}
	return nil
}

type transactor struct {
	conn    Connector
	enabled bool
}

// NewTransactor returns a Transactor backed by client sessions. With enabled
// set to false (standalone servers have no transactions) fn runs directly.
func NewTransactor(conn Connector, enabled bool) repository.Transactor {
	return &transactor{conn: conn, enabled: enabled}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	db, err := t.conn.Database(ctx)
	if err != nil {
		return err
	}

	session, err := db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
