package memory

import (
	"context"
	"sort"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type profileRepository struct {
	s *Store
}

func clone(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Industries = append([]string(nil), p.Industries...)
	return &cp
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := domain.NormalizeEmail(profile.Email)
	if _, ok := r.s.emails[email]; ok {
		return domain.ErrDuplicateEmail
	}

	now := r.s.now()
	profile.ID = uuid.NewString()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	id := profile.ID
	r.s.profiles[id] = clone(profile)
	r.s.emails[email] = id
	r.s.recordUndo(ctx, func() {
		delete(r.s.profiles, id)
		if r.s.emails[email] == id {
			delete(r.s.emails, email)
		}
	})
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return clone(p), nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return clone(r.s.profiles[id]), nil
}

func (r *profileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.emails[domain.NormalizeEmail(email)]
	return ok, nil
}

func (r *profileRepository) ListByStatus(ctx context.Context, statuses []domain.ProfileStatus) ([]*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[domain.ProfileStatus]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	profiles := make([]*domain.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		if wanted[p.Status] {
			profiles = append(profiles, clone(p))
		}
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (r *profileRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0, len(r.s.profiles))
	for id := range r.s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *profileRepository) IncrementCounter(ctx context.Context, id string, kind domain.InteractionType) error {
	return r.adjust(ctx, id, kind, 1)
}

func (r *profileRepository) DecrementCounter(ctx context.Context, id string, kind domain.InteractionType) error {
	return r.adjust(ctx, id, kind, -1)
}

func (r *profileRepository) adjust(ctx context.Context, id string, kind domain.InteractionType, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}

	counter := counterOf(p, kind)
	if *counter+delta < 0 {
		return nil
	}
	*counter += delta
	prevUpdated := p.UpdatedAt
	p.UpdatedAt = r.s.now()

	r.s.recordUndo(ctx, func() {
		if p, ok := r.s.profiles[id]; ok {
			*counterOf(p, kind) -= delta
			p.UpdatedAt = prevUpdated
		}
	})
	return nil
}

func counterOf(p *domain.Profile, kind domain.InteractionType) *int64 {
	if kind == domain.InteractionLike {
		return &p.Likes
	}
	return &p.Views
}

func (r *profileRepository) SetCounters(ctx context.Context, id string, counts domain.InteractionCounts) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	prev := domain.InteractionCounts{Views: p.Views, Likes: p.Likes}
	prevUpdated := p.UpdatedAt
	p.Views = counts.Views
	p.Likes = counts.Likes
	p.UpdatedAt = r.s.now()

	r.s.recordUndo(ctx, func() {
		if p, ok := r.s.profiles[id]; ok {
			p.Views = prev.Views
			p.Likes = prev.Likes
			p.UpdatedAt = prevUpdated
		}
	})
	return nil
}
