package repository

import (
	"context"
	"time"

	"github.com/guitarshop/cart-service/internal/domain/entity"
)

// CartSnapshotRepository stores the single cart snapshot under a fixed key.
// Load returns ErrNotFound when no snapshot has been written yet.
type CartSnapshotRepository interface {
	Load(ctx context.Context) (*entity.CartState, error)
	Save(ctx context.Context, state entity.CartState, ttl time.Duration) error
	Delete(ctx context.Context) error
}
