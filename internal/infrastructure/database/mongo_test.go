package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoProvider_RequiresURI(t *testing.T) {
	p := NewMongoProvider(&config.MongoConfig{Database: "x", ConnectTimeout: time.Second})

	_, err := p.Database(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestMongoProvider_RetriesAfterFailure(t *testing.T) {
	p := NewMongoProvider(&config.MongoConfig{URI: "mongodb://localhost", Database: "x", ConnectTimeout: time.Second})

	calls := 0
	p.connect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
		calls++
		return nil, errors.New("dial refused")
	}

	for i := 0; i < 3; i++ {
		_, err := p.Database(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestMongoProvider_CloseWithoutConnect(t *testing.T) {
	p := NewMongoProvider(&config.MongoConfig{})
	assert.NoError(t, p.Close(context.Background()))
}

func TestMongoProvider_InitRunsOnceAfterConnect(t *testing.T) {
	inits := 0
	p := NewMongoProvider(
		&config.MongoConfig{URI: "mongodb://127.0.0.1:1", Database: "cofounder", ConnectTimeout: time.Second},
		WithInit(func(ctx context.Context, db *mongo.Database) error {
			inits++
			assert.Equal(t, "cofounder", db.Name())
			if inits == 1 {
				return errors.New("index build failed")
			}
			return nil
		}),
	)
	p.ping = func(context.Context, *mongo.Client) error { return nil }

	_, err := p.Database(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index build failed")

	db, err := p.Database(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cofounder", db.Name())

	again, err := p.Database(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, again)
	assert.Equal(t, 2, inits)

	require.NoError(t, p.Close(context.Background()))
}

func TestMongoProvider_NoConnectionUntilFirstUse(t *testing.T) {
	calls := 0
	p := NewMongoProvider(
		&config.MongoConfig{URI: "mongodb://localhost", Database: "x", ConnectTimeout: time.Second},
		WithInit(func(context.Context, *mongo.Database) error { return nil }),
	)
	p.connect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
		calls++
		return nil, errors.New("dial refused")
	}

	assert.Zero(t, calls)
	_, err := p.Database(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
