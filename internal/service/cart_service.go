package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/platform/logger"
	"github.com/guitarshop/cart-service/internal/repository"
)

// CartService owns the canonical in-memory cart state. Every mutation runs
// as one serialized reduce-then-persist step: the new snapshot is written
// through to the snapshot store before it becomes visible, and a failed
// transition leaves both the state and the store untouched.
type CartService interface {
	State() entity.CartState
	AddItem(ctx context.Context, product entity.Guitar) (entity.CartState, error)
	RemoveItem(ctx context.Context, productID int) (entity.CartState, error)
	IncreaseQuantity(ctx context.Context, productID int) (entity.CartState, error)
	DecreaseQuantity(ctx context.Context, productID int) (entity.CartState, error)
	SetQuantity(ctx context.Context, productID, value int) (entity.CartState, error)
	SetCoupon(ctx context.Context, code string) (entity.CartState, error)
	Clear(ctx context.Context) (entity.CartState, error)
	Apply(ctx context.Context, action entity.Action) (entity.CartState, error)
}

const defaultSnapshotTTL = time.Duration(0)

type cartService struct {
	mu        sync.Mutex
	state     entity.CartState
	snapshots repository.CartSnapshotRepository
	ttl       time.Duration
	log       logger.Logger
}

type CartServiceConfig struct {
	SnapshotTTL time.Duration
}

// NewCartService restores the cart from the snapshot store, or starts from
// the empty default when no snapshot exists yet. The restored snapshot is
// taken verbatim; aggregates are not rebuilt from the items.
func NewCartService(
	ctx context.Context,
	snapshots repository.CartSnapshotRepository,
	log logger.Logger,
	cfg CartServiceConfig,
) (CartService, error) {
	ttl := cfg.SnapshotTTL
	if ttl < 0 {
		ttl = defaultSnapshotTTL
	}

	state := entity.EmptyCartState()
	restored, err := snapshots.Load(ctx)
	switch {
	case err == nil:
		state = *restored
		log.Infof("Cart restored from snapshot store: %d items, total %.2f", len(state.Items), state.TotalCartPrice)
	case errors.Is(err, repository.ErrNotFound):
		log.Info("No cart snapshot found, starting from empty cart")
	default:
		return nil, fmt.Errorf("could not restore cart snapshot: %w", err)
	}

	return &cartService{
		state:     state,
		snapshots: snapshots,
		ttl:       ttl,
		log:       log,
	}, nil
}

func (s *cartService) State() entity.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Apply runs one transition through the reducer and persists the result.
// The new state is committed only after the write-through succeeds.
func (s *cartService) Apply(ctx context.Context, action entity.Action) (entity.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := entity.Reduce(s.state, action)
	if err != nil {
		return entity.CartState{}, err
	}

	if err := s.snapshots.Save(ctx, next, s.ttl); err != nil {
		s.log.Errorf("Failed to persist cart snapshot: %v", err)
		return entity.CartState{}, fmt.Errorf("could not persist cart: %w", err)
	}

	s.state = next
	return next.Clone(), nil
}

func (s *cartService) AddItem(ctx context.Context, product entity.Guitar) (entity.CartState, error) {
	s.log.Infof("Adding product %d (%s) to cart", product.ID, product.Name)
	return s.Apply(ctx, entity.AddItem{Product: product})
}

func (s *cartService) RemoveItem(ctx context.Context, productID int) (entity.CartState, error) {
	s.log.Infof("Removing product %d from cart", productID)
	return s.Apply(ctx, entity.RemoveItem{ProductID: productID})
}

func (s *cartService) IncreaseQuantity(ctx context.Context, productID int) (entity.CartState, error) {
	s.log.Debugf("Increasing quantity of product %d", productID)
	return s.Apply(ctx, entity.IncreaseQuantity{ProductID: productID})
}

func (s *cartService) DecreaseQuantity(ctx context.Context, productID int) (entity.CartState, error) {
	s.log.Debugf("Decreasing quantity of product %d", productID)
	return s.Apply(ctx, entity.DecreaseQuantity{ProductID: productID})
}

func (s *cartService) SetQuantity(ctx context.Context, productID, value int) (entity.CartState, error) {
	s.log.Debugf("Setting quantity of product %d to %d", productID, value)
	return s.Apply(ctx, entity.SetQuantity{ProductID: productID, Value: value})
}

func (s *cartService) SetCoupon(ctx context.Context, code string) (entity.CartState, error) {
	s.log.Infof("Storing coupon %q", code)
	return s.Apply(ctx, entity.SetCoupon{Code: code})
}

func (s *cartService) Clear(ctx context.Context) (entity.CartState, error) {
	s.log.Info("Clearing cart")
	return s.Apply(ctx, entity.Clear{})
}
