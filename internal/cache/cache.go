package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ronincompetition/ronin/internal/model"
)

// ListKind selects which per-athlete bout list a cache entry holds.
type ListKind string

const (
	ListPending    ListKind = "pending"
	ListIncomplete ListKind = "incomplete"
)

// Repository caches the read-mostly lists the UI refreshes wholesale:
// the athlete roster and the per-athlete bout lists. A miss is
// (nil, nil); the caller falls through to the remote service.
type Repository interface {
	GetRoster(ctx context.Context) ([]model.Athlete, error)
	SetRoster(ctx context.Context, roster []model.Athlete, ttl time.Duration) error

	GetBouts(ctx context.Context, kind ListKind, athleteID model.AthleteID) ([]model.Bout, error)
	SetBouts(ctx context.Context, kind ListKind, athleteID model.AthleteID, bouts []model.Bout, ttl time.Duration) error

	// InvalidateBouts drops both bout lists for every given athlete so
	// the next read re-fetches server truth after a transition.
	InvalidateBouts(ctx context.Context, athleteIDs ...model.AthleteID) error
}

const rosterKey = "roster"

func boutsKey(kind ListKind, athleteID model.AthleteID) string {
	return fmt.Sprintf("bouts:%s:%d", kind, athleteID)
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

func (r *RedisCache) GetRoster(ctx context.Context) ([]model.Athlete, error) {
	var roster []model.Athlete
	if err := r.get(ctx, rosterKey, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *RedisCache) SetRoster(ctx context.Context, roster []model.Athlete, ttl time.Duration) error {
	return r.set(ctx, rosterKey, roster, ttl)
}

func (r *RedisCache) GetBouts(ctx context.Context, kind ListKind, athleteID model.AthleteID) ([]model.Bout, error) {
	var bouts []model.Bout
	if err := r.get(ctx, boutsKey(kind, athleteID), &bouts); err != nil {
		return nil, err
	}
	return bouts, nil
}

func (r *RedisCache) SetBouts(ctx context.Context, kind ListKind, athleteID model.AthleteID, bouts []model.Bout, ttl time.Duration) error {
	return r.set(ctx, boutsKey(kind, athleteID), bouts, ttl)
}

func (r *RedisCache) InvalidateBouts(ctx context.Context, athleteIDs ...model.AthleteID) error {
	keys := make([]string, 0, len(athleteIDs)*2)
	for _, id := range athleteIDs {
		keys = append(keys, boutsKey(ListPending, id), boutsKey(ListIncomplete, id))
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) get(ctx context.Context, key string, v any) error {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

func (r *RedisCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, string(raw), ttl).Err()
}
