package listing

import (
	"context"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// Cache stores the rendered public directory between writes. Generation is
// bumped by every invalidation; SetPublicProfiles drops the write when the
// generation moved past gen.
type Cache interface {
	GetPublicProfiles(ctx context.Context) ([]domain.PublicProfile, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetPublicProfiles(ctx context.Context, gen int64, profiles []domain.PublicProfile) error
}

type ListingUseCase struct {
	profileRepo repository.ProfileRepository
	cache       Cache
	log         logrus.FieldLogger
}

func NewListingUseCase(profileRepo repository.ProfileRepository, cache Cache, log logrus.FieldLogger) *ListingUseCase {
	return &ListingUseCase{
		profileRepo: profileRepo,
		cache:       cache,
		log:         log,
	}
}

// ListPublicProfiles returns pending and approved profiles, newest first,
// without email or status. Cache errors are logged and skipped.
func (uc *ListingUseCase) ListPublicProfiles(ctx context.Context) ([]domain.PublicProfile, error) {
	cached, ok, err := uc.cache.GetPublicProfiles(ctx)
	if err != nil {
		uc.log.WithError(err).Warn("profile cache read failed")
	} else if ok {
		return cached, nil
	}

	// Read before the store so a write landing in between leaves this
	// result uncached.
	gen, genErr := uc.cache.Generation(ctx)
	if genErr != nil {
		uc.log.WithError(genErr).Warn("profile cache generation read failed")
	}

	profiles, err := uc.profileRepo.ListByStatus(ctx, domain.ListedStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	public := make([]domain.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.IsListed() {
			continue
		}
		public = append(public, p.Public())
	}

	if genErr == nil {
		if err := uc.cache.SetPublicProfiles(ctx, gen, public); err != nil {
			uc.log.WithError(err).Warn("profile cache write failed")
		}
	}
	return public, nil
}
