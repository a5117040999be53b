// Package memory keeps profiles and the interaction ledger in process memory.
// It backs STORAGE_TYPE=memory for local runs and the use case tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
)

type Store struct {
	mu           sync.RWMutex
	profiles     map[string]*domain.Profile
	emails       map[string]string
	interactions map[string]*domain.Interaction
	ledgerKeys   map[ledgerKey]string

	txMu sync.Mutex
	now  func() time.Time
}

type ledgerKey struct {
	profileID string
	visitorID string
	kind      domain.InteractionType
}

type Option func(*Store)

// WithClock overrides the time source used for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		profiles:     make(map[string]*domain.Profile),
		emails:       make(map[string]string),
		interactions: make(map[string]*domain.Interaction),
		ledgerKeys:   make(map[ledgerKey]string),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Profiles() repository.ProfileRepository {
	return &profileRepository{s: s}
}

func (s *Store) Interactions() repository.InteractionRepository {
	return &interactionRepository{s: s}
}

func (s *Store) Transactor() repository.Transactor {
	return &transactor{s: s}
}

type txKey struct{}

// undoLog collects the inverse of every write made inside one transaction.
// Rolling back replays only those entries, so writes made outside the
// transaction while it was open survive.
type undoLog struct {
	s   *Store
	ops []func()
}

// recordUndo registers op to run on rollback when ctx carries a transaction
// of this store. Callers hold s.mu.
func (s *Store) recordUndo(ctx context.Context, op func()) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok && log.s == s {
		log.ops = append(log.ops, op)
	}
}

func (l *undoLog) rollback() {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	for i := len(l.ops) - 1; i >= 0; i-- {
		l.ops[i]()
	}
}

type transactor struct {
	s *Store
}

// WithinTransaction serialises transactions and reverts the writes fn made
// when it fails.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok && log.s == t.s {
		return fn(ctx)
	}

	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	log := &undoLog{s: t.s}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		log.rollback()
		return err
	}
	return nil
}
