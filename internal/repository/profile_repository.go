package repository

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
)

type ProfileRepository interface {
	// Create stores a new profile and fills in ID, CreatedAt and UpdatedAt.
	// A clash on the unique email index returns domain.ErrDuplicateEmail.
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListByStatus returns profiles with one of the statuses, newest first.
	ListByStatus(ctx context.Context, statuses []domain.ProfileStatus) ([]*domain.Profile, error)
	ListIDs(ctx context.Context) ([]string, error)
	IncrementCounter(ctx context.Context, id string, kind domain.InteractionType) error
	// DecrementCounter never takes a counter below zero; decrementing a zero
	// counter is a no-op.
	DecrementCounter(ctx context.Context, id string, kind domain.InteractionType) error
	SetCounters(ctx context.Context, id string, counts domain.InteractionCounts) error
}
