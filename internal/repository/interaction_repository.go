package repository

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
)

type InteractionRepository interface {
	// Create returns domain.ErrInteractionExists when a record for the same
	// (profile, visitor, type) is already live.
	Create(ctx context.Context, interaction *domain.Interaction) error
	Find(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (*domain.Interaction, error)
	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (bool, error)
	CountByProfile(ctx context.Context, profileID string) (domain.InteractionCounts, error)
}
