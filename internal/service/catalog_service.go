package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guitarshop/cart-service/internal/adapter/shopapi"
	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/platform/logger"
	"github.com/guitarshop/cart-service/internal/repository"
)

const defaultProductCacheTTL = 5 * time.Minute

// CatalogService fetches products from the shop API. Detail lookups go
// through the product cache; list queries always hit the API since the sort
// parameters make them poor cache keys.
type CatalogService interface {
	ListGuitars(ctx context.Context, query shopapi.GuitarQuery) ([]entity.Guitar, error)
	GetGuitar(ctx context.Context, productID int) (*entity.GuitarWithReviews, error)
}

type catalogService struct {
	shop     shopapi.Client
	cache    repository.ProductDetailCache
	cacheTTL time.Duration
	log      logger.Logger
}

type CatalogServiceConfig struct {
	ProductCacheTTL time.Duration
}

func NewCatalogService(
	shop shopapi.Client,
	cache repository.ProductDetailCache,
	log logger.Logger,
	cfg CatalogServiceConfig,
) CatalogService {
	cacheTTL := cfg.ProductCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultProductCacheTTL
	}

	return &catalogService{
		shop:     shop,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *catalogService) ListGuitars(ctx context.Context, query shopapi.GuitarQuery) ([]entity.Guitar, error) {
	guitars, err := s.shop.ListGuitars(ctx, query)
	if err != nil {
		s.log.Errorf("Failed to list guitars: %v", err)
		return nil, fmt.Errorf("could not fetch catalog: %w", err)
	}
	return guitars, nil
}

func (s *catalogService) GetGuitar(ctx context.Context, productID int) (*entity.GuitarWithReviews, error) {
	cached, err := s.cache.Get(ctx, productID)
	if err == nil && cached != nil {
		s.log.Debugf("Product %d found in cache", productID)
		return cached, nil
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Warnf("Error getting product %d from cache: %v. Fetching from shop API.", productID, err)
	}

	guitar, err := s.shop.GetGuitar(ctx, productID)
	if err != nil {
		s.log.Errorf("Failed to get guitar %d: %v", productID, err)
		return nil, fmt.Errorf("could not fetch product %d: %w", productID, err)
	}

	if err := s.cache.Set(ctx, productID, guitar, s.cacheTTL); err != nil {
		s.log.Warnf("Failed to cache product %d: %v", productID, err)
	}
	return guitar, nil
}
