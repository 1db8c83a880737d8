package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"refi-compare/domain"
)

// SnapshotRepository keeps the original/proposed loan pair as one JSON
// value under a single key.
type SnapshotRepository struct {
	cache CacheRepository
	key   string
	ttl   time.Duration
}

func NewSnapshotRepository(cache CacheRepository, key string, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{cache: cache, key: key, ttl: ttl}
}

// Load returns ErrCacheMiss when nothing has been saved yet.
func (r *SnapshotRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	raw, err := r.cache.Get(ctx, r.key)
	if err != nil {
		return domain.Snapshot{}, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", r.key, err)
	}
	return snap, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return r.cache.Set(ctx, r.key, string(data), r.ttl)
}

func (r *SnapshotRepository) Delete(ctx context.Context) error {
	return r.cache.Delete(ctx, r.key)
}
