package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lamnguyen-ct/storefront/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]*models.Order, error)
}

type orderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *DB) OrderRepository {
	return &orderRepo{
		collection: db.Database.Collection("orders"),
	}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *orderRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get order by session: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int64) ([]*models.Order, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}
