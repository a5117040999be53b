package interaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/repository/memory"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	mu            sync.Mutex
	invalidations int
}

func (c *countingCache) InvalidatePublicProfiles(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	return nil
}

type fixture struct {
	uc      *InteractionUseCase
	store   *memory.Store
	cache   *countingCache
	profile string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	p := &domain.Profile{FirstName: "Ada", Email: "ada@x.com", Status: domain.StatusPending}
	require.NoError(t, store.Profiles().Create(context.Background(), p))

	cache := &countingCache{}
	log, _ := logtest.NewNullLogger()
	uc := NewInteractionUseCase(store.Profiles(), store.Interactions(), store.Transactor(), cache, log)
	return &fixture{uc: uc, store: store, cache: cache, profile: p.ID}
}

func (f *fixture) counters(t *testing.T) (int64, int64) {
	t.Helper()
	p, err := f.store.Profiles().GetByID(context.Background(), f.profile)
	require.NoError(t, err)
	return p.Views, p.Likes
}

func (f *fixture) record(t *testing.T, visitor string, kind domain.InteractionType) domain.InteractionAction {
	t.Helper()
	action, err := f.uc.Record(context.Background(), visitor, &InteractRequest{ProfileID: f.profile, Type: string(kind)})
	require.NoError(t, err)
	return action
}

func TestRecord_ExampleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, domain.ActionViewed, f.record(t, "1.2.3.4", domain.InteractionView))
	assert.Equal(t, domain.ActionAlreadyViewed, f.record(t, "1.2.3.4", domain.InteractionView))
	assert.Equal(t, domain.ActionLiked, f.record(t, "1.2.3.4", domain.InteractionLike))

	views, likes := f.counters(t)
	assert.Equal(t, int64(1), views)
	assert.Equal(t, int64(1), likes)

	liked, err := f.uc.HasLiked(ctx, f.profile, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, liked)

	assert.Equal(t, domain.ActionUnliked, f.record(t, "1.2.3.4", domain.InteractionLike))
	_, likes = f.counters(t)
	assert.Zero(t, likes)

	liked, err = f.uc.HasLiked(ctx, f.profile, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, liked)

	assert.Equal(t, 3, f.cache.invalidations)
}

func TestRecord_InvalidInput(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		req  InteractRequest
	}{
		{"missing profile", InteractRequest{Type: "view"}},
		{"missing type", InteractRequest{ProfileID: f.profile}},
		{"unknown type", InteractRequest{ProfileID: f.profile, Type: "share"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Record(context.Background(), "1.2.3.4", &tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInteraction)
		})
	}
}

func TestRecord_UnknownProfileLeavesNoRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Record(ctx, "1.2.3.4", &InteractRequest{ProfileID: "missing", Type: "like"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	exists, err := f.store.Interactions().Exists(ctx, "missing", "1.2.3.4", domain.InteractionLike)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRecord_EmptyVisitorIsUnknown(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, domain.ActionViewed, f.record(t, "", domain.InteractionView))
	assert.Equal(t, domain.ActionAlreadyViewed, f.record(t, domain.UnknownVisitor, domain.InteractionView))
}

func TestRecord_LikeDoesNotImplyView(t *testing.T) {
	f := newFixture(t)

	f.record(t, "1.2.3.4", domain.InteractionLike)
	views, likes := f.counters(t)
	assert.Zero(t, views)
	assert.Equal(t, int64(1), likes)
}

// lostRaceLedger reports the record as missing on Find and then loses the
// insert to a concurrent writer.
type lostRaceLedger struct {
	repository.InteractionRepository
}

func (l lostRaceLedger) Find(context.Context, string, string, domain.InteractionType) (*domain.Interaction, error) {
	return nil, domain.ErrInteractionNotFound
}

func TestRecord_LostInsertRaceIsAbsorbed(t *testing.T) {
	f := newFixture(t)
	f.record(t, "1.2.3.4", domain.InteractionView)
	f.record(t, "1.2.3.4", domain.InteractionLike)

	log, _ := logtest.NewNullLogger()
	racy := NewInteractionUseCase(
		f.store.Profiles(), lostRaceLedger{f.store.Interactions()}, f.store.Transactor(), f.cache, log,
	)

	action, err := racy.Record(context.Background(), "1.2.3.4", &InteractRequest{ProfileID: f.profile, Type: "view"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionAlreadyViewed, action)

	action, err = racy.Record(context.Background(), "1.2.3.4", &InteractRequest{ProfileID: f.profile, Type: "like"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionLiked, action)

	views, likes := f.counters(t)
	assert.Equal(t, int64(1), views)
	assert.Equal(t, int64(1), likes)
}

type failingCounters struct {
	repository.ProfileRepository
}

func (failingCounters) DecrementCounter(context.Context, string, domain.InteractionType) error {
	return errors.New("write failed")
}

func TestRecord_FailedCounterRollsBackLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.record(t, "1.2.3.4", domain.InteractionLike)

	log, _ := logtest.NewNullLogger()
	broken := NewInteractionUseCase(
		failingCounters{f.store.Profiles()}, f.store.Interactions(), f.store.Transactor(), f.cache, log,
	)

	_, err := broken.Record(ctx, "1.2.3.4", &InteractRequest{ProfileID: f.profile, Type: "like"})
	require.Error(t, err)

	exists, err := f.store.Interactions().Exists(ctx, f.profile, "1.2.3.4", domain.InteractionLike)
	require.NoError(t, err)
	assert.True(t, exists)

	_, likes := f.counters(t)
	assert.Equal(t, int64(1), likes)
}

func TestRecord_ConcurrentVisitors(t *testing.T) {
	f := newFixture(t)
	const visitors = 25

	var wg sync.WaitGroup
	for i := 0; i < visitors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			visitor := fmt.Sprintf("10.0.0.%d", i)
			_, _ = f.uc.Record(context.Background(), visitor, &InteractRequest{ProfileID: f.profile, Type: "view"})
			_, _ = f.uc.Record(context.Background(), visitor, &InteractRequest{ProfileID: f.profile, Type: "like"})
		}(i)
	}
	wg.Wait()

	views, likes := f.counters(t)
	assert.Equal(t, int64(visitors), views)
	assert.Equal(t, int64(visitors), likes)
}

func TestHasLiked_RequiresProfileID(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.HasLiked(context.Background(), " ", "1.2.3.4")
	assert.ErrorIs(t, err, domain.ErrInvalidInteraction)
}

func TestReconcile_RepairsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.record(t, "a", domain.InteractionView)
	f.record(t, "b", domain.InteractionView)
	f.record(t, "a", domain.InteractionLike)
	require.NoError(t, f.store.Profiles().SetCounters(ctx, f.profile, domain.InteractionCounts{Views: 9, Likes: 0}))

	other := &domain.Profile{Email: "b@x.com", Status: domain.StatusApproved}
	require.NoError(t, f.store.Profiles().Create(ctx, other))

	corrected, err := f.uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)

	views, likes := f.counters(t)
	assert.Equal(t, int64(2), views)
	assert.Equal(t, int64(1), likes)

	corrected, err = f.uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, corrected)
}

func TestRecord_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("n likes from one visitor leave n mod 2 likes and alternate actions", prop.ForAll(
		func(n int) bool {
			f := newFixture(t)
			for i := 0; i < n; i++ {
				want := domain.ActionLiked
				if i%2 == 1 {
					want = domain.ActionUnliked
				}
				action, err := f.uc.Record(context.Background(), "v", &InteractRequest{ProfileID: f.profile, Type: "like"})
				if err != nil || action != want {
					return false
				}
			}
			_, likes := f.counters(t)
			liked, err := f.uc.HasLiked(context.Background(), f.profile, "v")
			return err == nil && likes == int64(n%2) && liked == (n%2 == 1)
		},
		gen.IntRange(1, 20),
	))

	properties.Property("views equal the number of distinct visitors", prop.ForAll(
		func(picks []int) bool {
			pool := []string{"1.1.1.1", "2.2.2.2", "3.3.3.3", domain.UnknownVisitor, "::1"}
			f := newFixture(t)
			distinct := make(map[string]struct{})
			var last int64
			for _, i := range picks {
				v := pool[i]
				if _, err := f.uc.Record(context.Background(), v, &InteractRequest{ProfileID: f.profile, Type: "view"}); err != nil {
					return false
				}
				views, _ := f.counters(t)
				if views < last {
					return false
				}
				last = views
				distinct[v] = struct{}{}
			}
			return last == int64(len(distinct))
		},
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.TestingRun(t)
}
