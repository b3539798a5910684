package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const productDetailCacheKeyPrefix = "product_detail:"

type productDetailCacheRepository struct {
	client *redis.Client
}

func NewProductDetailCacheRepository(client *redis.Client) repository.ProductDetailCache {
	return &productDetailCacheRepository{
		client: client,
	}
}

func (r *productDetailCacheRepository) getProductDetailKey(productID int) string {
	return productDetailCacheKeyPrefix + strconv.Itoa(productID)
}

func (r *productDetailCacheRepository) Get(ctx context.Context, productID int) (*entity.GuitarWithReviews, error) {
	key := r.getProductDetailKey(productID)
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product detail for productID %d from redis: %w", productID, err)
	}

	var product entity.GuitarWithReviews
	if err := json.Unmarshal(val, &product); err != nil {
		// A snapshot that no longer decodes is useless, drop it.
		_ = r.Delete(ctx, productID)
		return nil, fmt.Errorf("failed to unmarshal product detail data for productID %d: %w", productID, err)
	}
	return &product, nil
}

func (r *productDetailCacheRepository) Set(ctx context.Context, productID int, product *entity.GuitarWithReviews, ttl time.Duration) error {
	if product == nil {
		return errors.New("cannot cache nil product details")
	}
	key := r.getProductDetailKey(productID)

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product details for productID %d: %w", productID, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product detail for productID %d to redis: %w", productID, err)
	}
	return nil
}

func (r *productDetailCacheRepository) Delete(ctx context.Context, productID int) error {
	key := r.getProductDetailKey(productID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete product detail for productID %d from redis: %w", productID, err)
	}
	return nil
}
