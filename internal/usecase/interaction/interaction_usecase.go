package interaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// CacheInvalidator drops the cached public directory after a counter change.
type CacheInvalidator interface {
	InvalidatePublicProfiles(ctx context.Context) error
}

type InteractionUseCase struct {
	profileRepo     repository.ProfileRepository
	interactionRepo repository.InteractionRepository
	tx              repository.Transactor
	cache           CacheInvalidator
	log             logrus.FieldLogger
}

func NewInteractionUseCase(
	profileRepo repository.ProfileRepository,
	interactionRepo repository.InteractionRepository,
	tx repository.Transactor,
	cache CacheInvalidator,
	log logrus.FieldLogger,
) *InteractionUseCase {
	return &InteractionUseCase{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		tx:              tx,
		cache:           cache,
		log:             log,
	}
}

// InteractRequest is the body of POST /api/cofounder/interact
type InteractRequest struct {
	ProfileID string `json:"profileId"`
	Type      string `json:"type"`
}

func visitorOrUnknown(visitorID string) string {
	if visitorID = strings.TrimSpace(visitorID); visitorID == "" {
		return domain.UnknownVisitor
	}
	return visitorID
}

// Record applies one view or like from visitorID to a profile. Views are
// counted once per visitor; likes toggle. The ledger write and the counter
// update commit together.
func (uc *InteractionUseCase) Record(ctx context.Context, visitorID string, req *InteractRequest) (domain.InteractionAction, error) {
	profileID := strings.TrimSpace(req.ProfileID)
	kind := domain.InteractionType(req.Type)
	if profileID == "" || !kind.Valid() {
		return "", domain.ErrInvalidInteraction
	}
	visitorID = visitorOrUnknown(visitorID)

	var action domain.InteractionAction
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		action, err = uc.apply(ctx, profileID, visitorID, kind)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) || errors.Is(err, domain.ErrInvalidProfileID) {
			return "", err
		}
		return "", fmt.Errorf("failed to record %s: %w", kind, err)
	}

	if action != domain.ActionAlreadyViewed {
		if err := uc.cache.InvalidatePublicProfiles(ctx); err != nil {
			uc.log.WithError(err).Warn("failed to invalidate profile cache")
		}
	}

	uc.log.WithFields(logrus.Fields{
		"profile_id": profileID,
		"visitor_id": visitorID,
		"action":     action,
	}).Debug("interaction recorded")

	return action, nil
}

func (uc *InteractionUseCase) apply(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (domain.InteractionAction, error) {
	existing, err := uc.interactionRepo.Find(ctx, profileID, visitorID, kind)
	switch {
	case err == nil:
		if kind == domain.InteractionView {
			return domain.ActionAlreadyViewed, nil
		}
		deleted, err := uc.interactionRepo.Delete(ctx, existing.ID)
		if err != nil {
			return "", err
		}
		// A concurrent unlike may have removed the record already.
		if deleted {
			if err := uc.profileRepo.DecrementCounter(ctx, profileID, kind); err != nil {
				return "", err
			}
		}
		return domain.ActionUnliked, nil

	case errors.Is(err, domain.ErrInteractionNotFound):
		return uc.create(ctx, profileID, visitorID, kind)

	default:
		return "", err
	}
}

func (uc *InteractionUseCase) create(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (domain.InteractionAction, error) {
	record := &domain.Interaction{ProfileID: profileID, VisitorID: visitorID, Type: kind}
	if err := uc.interactionRepo.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrInteractionExists) {
			// Another request created the same record first; the state the
			// visitor asked for already holds.
			if kind == domain.InteractionView {
				return domain.ActionAlreadyViewed, nil
			}
			return domain.ActionLiked, nil
		}
		return "", err
	}

	if err := uc.profileRepo.IncrementCounter(ctx, profileID, kind); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			// Stores without transactions keep the record otherwise.
			if _, derr := uc.interactionRepo.Delete(ctx, record.ID); derr != nil {
				uc.log.WithError(derr).WithField("interaction_id", record.ID).Warn("failed to remove orphan interaction")
			}
		}
		return "", err
	}

	if kind == domain.InteractionView {
		return domain.ActionViewed, nil
	}
	return domain.ActionLiked, nil
}

// HasLiked reports whether a live like from visitorID exists.
func (uc *InteractionUseCase) HasLiked(ctx context.Context, profileID, visitorID string) (bool, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return false, domain.ErrInvalidInteraction
	}
	liked, err := uc.interactionRepo.Exists(ctx, profileID, visitorOrUnknown(visitorID), domain.InteractionLike)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfileID) {
			return false, err
		}
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return liked, nil
}

// Reconcile recomputes every profile's counters from the ledger and returns
// how many profiles were corrected.
func (uc *InteractionUseCase) Reconcile(ctx context.Context) (int, error) {
	ids, err := uc.profileRepo.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	corrected := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return corrected, err
		}

		var changed bool
		err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			changed = false
			profile, err := uc.profileRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			counts, err := uc.interactionRepo.CountByProfile(ctx, id)
			if err != nil {
				return err
			}
			if profile.Views == counts.Views && profile.Likes == counts.Likes {
				return nil
			}

			uc.log.WithFields(logrus.Fields{
				"profile_id":   id,
				"views_stored": profile.Views,
				"views_ledger": counts.Views,
				"likes_stored": profile.Likes,
				"likes_ledger": counts.Likes,
			}).Info("correcting profile counters")

			changed = true
			return uc.profileRepo.SetCounters(ctx, id, counts)
		})
		if err != nil {
			return corrected, fmt.Errorf("failed to reconcile profile %s: %w", id, err)
		}
		if changed {
			corrected++
		}
	}

	if corrected > 0 {
		if err := uc.cache.InvalidatePublicProfiles(ctx); err != nil {
			uc.log.WithError(err).Warn("failed to invalidate profile cache")
		}
	}
	return corrected, nil
}
