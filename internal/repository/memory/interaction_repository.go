package memory

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type interactionRepository struct {
	s *Store
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := ledgerKey{interaction.ProfileID, interaction.VisitorID, interaction.Type}
	if _, ok := r.s.ledgerKeys[key]; ok {
		return domain.ErrInteractionExists
	}

	interaction.ID = uuid.NewString()
	interaction.CreatedAt = r.s.now()

	cp := *interaction
	r.s.interactions[cp.ID] = &cp
	r.s.ledgerKeys[key] = cp.ID
	r.s.recordUndo(ctx, func() {
		delete(r.s.interactions, cp.ID)
		if r.s.ledgerKeys[key] == cp.ID {
			delete(r.s.ledgerKeys, key)
		}
	})
	return nil
}

func (r *interactionRepository) Find(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (*domain.Interaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.ledgerKeys[ledgerKey{profileID, visitorID, kind}]
	if !ok {
		return nil, domain.ErrInteractionNotFound
	}
	cp := *r.s.interactions[id]
	return &cp, nil
}

func (r *interactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.interactions[id]
	if !ok {
		return false, nil
	}
	key := ledgerKey{i.ProfileID, i.VisitorID, i.Type}
	delete(r.s.ledgerKeys, key)
	delete(r.s.interactions, id)
	r.s.recordUndo(ctx, func() {
		if _, taken := r.s.ledgerKeys[key]; taken {
			return
		}
		r.s.interactions[id] = i
		r.s.ledgerKeys[key] = id
	})
	return true, nil
}

func (r *interactionRepository) Exists(ctx context.Context, profileID, visitorID string, kind domain.InteractionType) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.ledgerKeys[ledgerKey{profileID, visitorID, kind}]
	return ok, nil
}

func (r *interactionRepository) CountByProfile(ctx context.Context, profileID string) (domain.InteractionCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var counts domain.InteractionCounts
	for _, i := range r.s.interactions {
		if i.ProfileID != profileID {
			continue
		}
		switch i.Type {
		case domain.InteractionView:
			counts.Views++
		case domain.InteractionLike:
			counts.Likes++
		}
	}
	return counts, nil
}
