package rules

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	rulesRepo "soothely/database/repository/rules"
	"soothely/models"
	"soothely/utils"
)

// snapshotKey is the Redis key holding the serialized rules snapshot.
const snapshotKey = "rules:snapshot"

// snapshotTTL bounds how stale a cached snapshot may get. Writes through the
// admin surface invalidate eagerly, so the TTL only covers out-of-band edits.
const snapshotTTL = 5 * time.Minute

// Snapshot bundles every rule set a single computation needs, fetched in one
// shot so slots, prices and fees within a request agree with each other.
type Snapshot struct {
	Business      models.BusinessRules  `json:"business"`
	PricingRules  []models.PricingRule  `json:"pricingRules"`
	DurationRules []models.DurationRule `json:"durationRules"`
}

// SnapshotCache serves rule snapshots from Redis with a Mongo fallthrough.
type SnapshotCache struct {
	repo  rulesRepo.RulesRepository
	cache *redis.Client
}

// NewSnapshotCache builds a cache over the given repository and Redis
// client.
func NewSnapshotCache(repo rulesRepo.RulesRepository, cache *redis.Client) *SnapshotCache {
	return &SnapshotCache{repo: repo, cache: cache}
}

// Get returns the current rules snapshot, from cache when fresh.
func (s *SnapshotCache) Get(ctx context.Context) (*Snapshot, error) {
	if data, err := s.cache.Get(ctx, snapshotKey).Result(); err == nil {
		var snap Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err == nil {
			return &snap, nil
		}
		// Corrupt cache entry: fall through to Mongo and overwrite.
		utils.GetLogger().Warn("discarding undecodable rules snapshot from cache")
	}

	snap, err := s.load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := s.cache.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache rules snapshot", zap.Error(err))
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot. Called after every rules write.
func (s *SnapshotCache) Invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, snapshotKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate rules snapshot", zap.Error(err))
	}
}

func (s *SnapshotCache) load() (*Snapshot, error) {
	business, err := s.repo.GetBusinessRules()
	if err != nil {
		return nil, err
	}
	pricing, err := s.repo.ListPricingRules()
	if err != nil {
		return nil, err
	}
	duration, err := s.repo.ListDurationRules()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{PricingRules: pricing, DurationRules: duration}
	if business != nil {
		snap.Business = *business
	}
	return snap, nil
}
