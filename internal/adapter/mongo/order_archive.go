package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/guitarshop/cart-service/internal/app/config"
	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const orderCollectionName = "orders"

type orderArchiveRepository struct {
	collection *mongo.Collection
}

func NewOrderArchiveRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.OrderArchiveRepository {
	return &orderArchiveRepository{
		collection: client.Database(cfg.Database).Collection(orderCollectionName),
	}
}

func (r *orderArchiveRepository) Save(ctx context.Context, order *entity.Order) error {
	if order == nil || order.ID == "" {
		return errors.New("cannot archive nil order or order with empty ID")
	}

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to archive order %s: %w", order.ID, err)
	}
	return nil
}

func (r *orderArchiveRepository) GetByID(ctx context.Context, orderID string) (*entity.Order, error) {
	var order entity.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get archived order %s: %w", orderID, err)
	}
	return &order, nil
}

func (r *orderArchiveRepository) ListRecent(ctx context.Context, limit int64) ([]*entity.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*entity.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode archived orders: %w", err)
	}
	return orders, nil
}
