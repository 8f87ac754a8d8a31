package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carousell/ct-go/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lamnguyen-ct/storefront/internal/models"
)

// CartRepository persists one snapshot document per cart. Reads are best
// effort: a missing or undecodable snapshot loads as a fresh empty cart,
// never as an error.
type CartRepository interface {
	Load(ctx context.Context, cartID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type cartRepo struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewCartRepository(db *DB) CartRepository {
	return &cartRepo{
		collection: db.Database.Collection("carts"),
		log:        logger.MustNamed("cart_repo"),
	}
}

func (r *cartRepo) Load(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			// corrupt snapshot: fall back to an empty cart
			r.log.Warnw("failed to load cart snapshot, starting empty",
				"cart_id", cartID, "error", err)
		}
		return models.NewCart(cartID), nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (r *cartRepo) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart, opts)
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (r *cartRepo) Delete(ctx context.Context, cartID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": cartID})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
