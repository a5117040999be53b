package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	publicProfilesKey   = "cofounder:profiles:public"
	publicGenerationKey = "cofounder:profiles:public:gen"
)

// setIfGeneration writes the directory only while the generation still
// matches the one the caller read before loading from the store.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// ProfileCache keeps the rendered public directory in Redis.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

// GetPublicProfiles returns (profiles, true, nil) on a hit and (nil, false, nil)
// on a miss.
func (c *ProfileCache) GetPublicProfiles(ctx context.Context) ([]domain.PublicProfile, bool, error) {
	raw, err := c.client.Get(ctx, publicProfilesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var profiles []domain.PublicProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, false, err
	}
	return profiles, true, nil
}

// Generation returns the invalidation counter. A missing key reads as 0.
func (c *ProfileCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, publicGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetPublicProfiles stores profiles unless an invalidation happened after gen
// was read. A skipped write is not an error.
func (c *ProfileCache) SetPublicProfiles(ctx context.Context, gen int64, profiles []domain.PublicProfile) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	return setIfGeneration.Run(ctx, c.client,
		[]string{publicProfilesKey, publicGenerationKey},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Err()
}

// InvalidatePublicProfiles bumps the generation and drops the cached
// directory in one MULTI block.
func (c *ProfileCache) InvalidatePublicProfiles(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, publicGenerationKey)
		pipe.Del(ctx, publicProfilesKey)
		return nil
	})
	return err
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) GetPublicProfiles(context.Context) ([]domain.PublicProfile, bool, error) {
	return nil, false, nil
}

func (Noop) Generation(context.Context) (int64, error) { return 0, nil }

func (Noop) SetPublicProfiles(context.Context, int64, []domain.PublicProfile) error { return nil }

func (Noop) InvalidatePublicProfiles(context.Context) error { return nil }
