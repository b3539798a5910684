package service

import (
	"context"
	"fmt"

	"github.com/guitarshop/cart-service/internal/adapter/shopapi"
	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/platform/logger"
)

// ReviewService validates review drafts and submits them to the shop API.
type ReviewService interface {
	SubmitReview(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error)
}

type reviewService struct {
	shop  shopapi.Client
	cache productCacheInvalidator
	log   logger.Logger
}

// productCacheInvalidator is the slice of the product cache this service
// needs: a new review makes the cached detail payload stale.
type productCacheInvalidator interface {
	Delete(ctx context.Context, productID int) error
}

func NewReviewService(shop shopapi.Client, cache productCacheInvalidator, log logger.Logger) ReviewService {
	return &reviewService{
		shop:  shop,
		cache: cache,
		log:   log,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, draft entity.ReviewDraft) (*entity.Review, error) {
	if err := draft.Validate(); err != nil {
		s.log.Warnf("Rejected review for guitar %d: %v", draft.GuitarID, err)
		return nil, err
	}

	review, err := s.shop.CreateReview(ctx, draft)
	if err != nil {
		s.log.Errorf("Failed to submit review for guitar %d: %v", draft.GuitarID, err)
		return nil, fmt.Errorf("could not submit review: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, draft.GuitarID); err != nil {
			s.log.Warnf("Failed to invalidate cached product %d: %v", draft.GuitarID, err)
		}
	}

	s.log.Infof("Review %d created for guitar %d", review.ID, review.GuitarID)
	return review, nil
}
