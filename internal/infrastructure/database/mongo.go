package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoProvider hands out a process-wide MongoDB handle. The client is
// created on first use and reused by every later caller. A failed attempt is
// not remembered, so the next caller tries again.
type MongoProvider struct {
	cfg  *config.MongoConfig
	init func(ctx context.Context, db *mongo.Database) error

	mu sync.Mutex
	db atomic.Pointer[mongo.Database]

	connect func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error)
	ping    func(ctx context.Context, client *mongo.Client) error
}

type MongoOption func(*MongoProvider)

// WithInit runs fn after every successful connect and before the handle is
// shared. When fn fails the client is dropped and the next caller reconnects.
func WithInit(fn func(ctx context.Context, db *mongo.Database) error) MongoOption {
	return func(p *MongoProvider) { p.init = fn }
}

func NewMongoProvider(cfg *config.MongoConfig, opts ...MongoOption) *MongoProvider {
	p := &MongoProvider{
		cfg:     cfg,
		connect: mongo.Connect,
		ping: func(ctx context.Context, client *mongo.Client) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Database returns the shared database handle, connecting if needed.
func (p *MongoProvider) Database(ctx context.Context) (*mongo.Database, error) {
	if db := p.db.Load(); db != nil {
		return db, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if db := p.db.Load(); db != nil {
		return db, nil
	}

	if p.cfg.URI == "" {
		return nil, errors.New("MONGODB_URI is not defined")
	}

	opts := options.Client().
		ApplyURI(p.cfg.URI).
		SetServerSelectionTimeout(p.cfg.ConnectTimeout).
		SetConnectTimeout(p.cfg.ConnectTimeout)

	client, err := p.connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()

	if err := p.ping(pingCtx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(p.cfg.Database)
	if p.init != nil {
		if err := p.init(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to prepare mongodb: %w", err)
		}
	}
	p.db.Store(db)
	return db, nil
}

// Close disconnects the client if one was ever created.
func (p *MongoProvider) Close(ctx context.Context) error {
	db := p.db.Load()
	if db == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	p.db.Store(nil)
	return nil
}
