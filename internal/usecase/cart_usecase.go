package usecase

import (
	"context"
	"fmt"

	"github.com/carousell/ct-go/pkg/logger"

	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/repo/mongodb"
)

// CartUsecase owns all cart mutations. Every mutation loads the
// snapshot, applies the reducer and persists the result within the same
// request; concurrent writers of one cart resolve as last write wins.
type CartUsecase interface {
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID string, product models.Product) (*models.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
}

type cartUsecase struct {
	carts mongodb.CartRepository
	log   *logger.Logger
}

func NewCartUsecase(carts mongodb.CartRepository) CartUsecase {
	return &cartUsecase{
		carts: carts,
		log:   logger.MustNamed("cart"),
	}
}

func (uc *cartUsecase) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	return uc.carts.Load(ctx, cartID)
}

func (uc *cartUsecase) AddItem(ctx context.Context, cartID string, product models.Product) (*models.Cart, error) {
	return uc.mutate(ctx, cartID, func(cart *models.Cart) {
		cart.AddItem(product)
	})
}

func (uc *cartUsecase) RemoveItem(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	return uc.mutate(ctx, cartID, func(cart *models.Cart) {
		cart.RemoveItem(productID)
	})
}

func (uc *cartUsecase) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	return uc.mutate(ctx, cartID, func(cart *models.Cart) {
		cart.SetQuantity(productID, quantity)
	})
}

func (uc *cartUsecase) ClearCart(ctx context.Context, cartID string) error {
	if err := uc.carts.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (uc *cartUsecase) mutate(ctx context.Context, cartID string, apply func(*models.Cart)) (*models.Cart, error) {
	cart, err := uc.carts.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	apply(cart)

	// persistence is best effort: the mutated cart is still served even
	// when the snapshot write fails
	if err := uc.carts.Save(ctx, cart); err != nil {
		uc.log.Warnw("failed to persist cart snapshot", "cart_id", cartID, "error", err)
	}
	return cart, nil
}
