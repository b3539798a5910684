package repository

import (
	"context"

	"github.com/guitarshop/cart-service/internal/domain/entity"
)

// OrderArchiveRepository keeps confirmed orders. Archived orders are
// immutable; there is no update path.
type OrderArchiveRepository interface {
	Save(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, orderID string) (*entity.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]*entity.Order, error)
}
