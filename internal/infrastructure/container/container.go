package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/config"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/cache"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/database"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/server"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/gdugdh24/cofounder-backend/internal/repository/mongodb"
	"github.com/gdugdh24/cofounder-backend/internal/repository/postgres"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/interaction"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/listing"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/submission"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type profileCache interface {
	listing.Cache
	InvalidatePublicProfiles(ctx context.Context) error
}

type storage struct {
	profiles     repository.ProfileRepository
	interactions repository.InteractionRepository
	tx           repository.Transactor
}

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logrus.Logger
	Mongo  *database.MongoProvider
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server

	Interactions *interaction.InteractionUseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	store, err := c.initStorage(ctx)
	if err != nil {
		_ = c.Close(ctx)
		return nil, err
	}

	profiles := c.initCache(ctx)

	// Initialize use cases
	submissionUseCase := submission.NewSubmissionUseCase(store.profiles, profiles, log)
	listingUseCase := listing.NewListingUseCase(store.profiles, profiles, log)
	c.Interactions = interaction.NewInteractionUseCase(store.profiles, store.interactions, store.tx, profiles, log)

	// Initialize handlers
	cofounderHandler := handler.NewCofounderHandler(submissionUseCase, listingUseCase, log)
	interactionHandler := handler.NewInteractionHandler(c.Interactions, log)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := http.NewRouter(cofounderHandler, interactionHandler, log)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

func (c *Container) initStorage(ctx context.Context) (*storage, error) {
	cfg := c.Config
	log := c.Log.WithField("storage", cfg.Storage.Type)

	switch cfg.Storage.Type {
	case config.StorageMongo:
		// Connecting and index creation wait for the first request, so the
		// process starts while MongoDB is still down.
		c.Mongo = database.NewMongoProvider(&cfg.Mongo, database.WithInit(mongodb.CreateIndexes))
		log.WithField("database", cfg.Mongo.Database).Info("storage configured")
		return &storage{
			profiles:     mongodb.NewProfileRepository(c.Mongo),
			interactions: mongodb.NewInteractionRepository(c.Mongo),
			tx:           mongodb.NewTransactor(c.Mongo, cfg.Mongo.Transactions),
		}, nil

	case config.StoragePostgres:
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to prepare database schema: %w", err)
		}
		log.WithField("database", cfg.Database.DBName).Info("storage ready")
		return &storage{
			profiles:     postgres.NewProfileRepository(db),
			interactions: postgres.NewInteractionRepository(db),
			tx:           postgres.NewTransactor(db),
		}, nil

	case config.StorageMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		mem := memory.NewStore()
		return &storage{
			profiles:     mem.Profiles(),
			interactions: mem.Interactions(),
			tx:           mem.Transactor(),
		}, nil
	}

	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}

func (c *Container) initCache(ctx context.Context) profileCache {
	if !c.Config.RedisEnabled() {
		return cache.Noop{}
	}

	client, err := database.NewRedisClient(ctx, &c.Config.Redis)
	if err != nil {
		c.Log.WithError(err).Warn("redis unavailable, profile cache disabled")
		return cache.Noop{}
	}
	c.Redis = client
	return cache.NewProfileCache(client, c.Config.Cache.ProfilesTTL)
}

// Close closes all connections
func (c *Container) Close(ctx context.Context) error {
	var errs []error

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close mongodb: %w", err))
		}
	}

	return errors.Join(errs...)
}
