package repository

import (
	"context"
	"time"

	"github.com/guitarshop/cart-service/internal/domain/entity"
)

// ProductDetailCache caches product detail payloads fetched from the shop
// API. Get returns ErrNotFound on a cache miss.
type ProductDetailCache interface {
	Get(ctx context.Context, productID int) (*entity.GuitarWithReviews, error)
	Set(ctx context.Context, productID int, product *entity.GuitarWithReviews, ttl time.Duration) error
	Delete(ctx context.Context, productID int) error
}
