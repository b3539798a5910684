package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

// cartSnapshotRepository keeps the whole cart snapshot as one JSON value
// under a fixed key, the way the browser storefront kept it in local storage.
type cartSnapshotRepository struct {
	client *redis.Client
	key    string
}

func NewCartSnapshotRepository(client *redis.Client, key string) repository.CartSnapshotRepository {
	return &cartSnapshotRepository{
		client: client,
		key:    key,
	}
}

func (r *cartSnapshotRepository) Load(ctx context.Context) (*entity.CartState, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart snapshot %q from redis: %w", r.key, err)
	}

	state, err := unmarshalSnapshot(val)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot %q: %w", r.key, err)
	}
	return state, nil
}

func (r *cartSnapshotRepository) Save(ctx context.Context, state entity.CartState, ttl time.Duration) error {
	data, err := marshalSnapshot(state)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot %q: %w", r.key, err)
	}

	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot %q to redis: %w", r.key, err)
	}
	return nil
}

func marshalSnapshot(state entity.CartState) ([]byte, error) {
	return json.Marshal(state)
}

// unmarshalSnapshot decodes a stored snapshot. A snapshot saved with no
// items decodes to a nil map; the reducer expects a non-nil one.
func unmarshalSnapshot(data []byte) (*entity.CartState, error) {
	var state entity.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Items == nil {
		state.Items = make(map[int]entity.LineItem)
	}
	return &state, nil
}

func (r *cartSnapshotRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot %q from redis: %w", r.key, err)
	}
	return nil
}
