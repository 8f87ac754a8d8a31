package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lamnguyen-ct/storefront/internal/models"
)

// mockCartRepo persists snapshots through a bson round trip, so tests
// cover the same encode/decode path the real repository uses.
type mockCartRepo struct {
	snapshots map[string][]byte
	saveErr   error
	deleted   []string
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{snapshots: map[string][]byte{}}
}

func (m *mockCartRepo) Load(_ context.Context, cartID string) (*models.Cart, error) {
	raw, ok := m.snapshots[cartID]
	if !ok {
		return models.NewCart(cartID), nil
	}
	var cart models.Cart
	if err := bson.Unmarshal(raw, &cart); err != nil {
		return models.NewCart(cartID), nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (m *mockCartRepo) Save(_ context.Context, cart *models.Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := bson.Marshal(cart)
	if err != nil {
		return err
	}
	m.snapshots[cart.ID] = raw
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, cartID string) error {
	delete(m.snapshots, cartID)
	m.deleted = append(m.deleted, cartID)
	return nil
}

func product(id, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price, Category: "misc"}
}

func TestAddItemMergesByProductID(t *testing.T) {
	uc := NewCartUsecase(newMockCartRepo())
	ctx := context.Background()

	shirt := product("p1", "Red Shirt", 30)
	for i := 0; i < 3; i++ {
		_, err := uc.AddItem(ctx, "c1", shirt)
		require.NoError(t, err)
	}
	cart, err := uc.AddItem(ctx, "c1", product("p2", "Blue Mug", 10))
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "p1", cart.Items[0].ID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "p2", cart.Items[1].ID)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	repo := newMockCartRepo()
	uc := NewCartUsecase(repo)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "c1", product("p2", "Blue Mug", 10))
	require.NoError(t, err)

	cart, err := uc.UpdateQuantity(ctx, "c1", "p1", 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ID)

	// same via the remove operation for the other entry
	cart, err = uc.RemoveItem(ctx, "c1", "p2")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	uc := NewCartUsecase(newMockCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)

	cart, err := uc.UpdateQuantity(ctx, "c1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems())
}

func TestTotalsRecomputedAfterMutations(t *testing.T) {
	uc := NewCartUsecase(newMockCartRepo())
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)
	cart, err := uc.AddItem(ctx, "c1", product("p2", "Blue Mug", 10.5))
	require.NoError(t, err)

	assert.Equal(t, 3, cart.TotalItems())
	assert.InDelta(t, 70.5, cart.TotalPrice(), 1e-9)

	cart, err = uc.UpdateQuantity(ctx, "c1", "p2", 4)
	require.NoError(t, err)
	assert.InDelta(t, 102, cart.TotalPrice(), 1e-9)

	cart, err = uc.RemoveItem(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.InDelta(t, 42, cart.TotalPrice(), 1e-9)
}

func TestCartSnapshotRoundTrip(t *testing.T) {
	repo := newMockCartRepo()
	uc := NewCartUsecase(repo)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "c1", product("p2", "Blue Mug", 10))
	require.NoError(t, err)
	saved, err := uc.UpdateQuantity(ctx, "c1", "p2", 7)
	require.NoError(t, err)

	reloaded, err := uc.GetCart(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, len(saved.Items))
	for i := range saved.Items {
		assert.Equal(t, saved.Items[i].ID, reloaded.Items[i].ID)
		assert.Equal(t, saved.Items[i].Quantity, reloaded.Items[i].Quantity)
	}
}

func TestCorruptSnapshotFallsBackToEmptyCart(t *testing.T) {
	repo := newMockCartRepo()
	repo.snapshots["c1"] = []byte("not a bson document")
	uc := NewCartUsecase(repo)

	cart, err := uc.GetCart(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestSaveFailureStillServesMutatedCart(t *testing.T) {
	repo := newMockCartRepo()
	repo.saveErr = assert.AnError
	uc := NewCartUsecase(repo)

	cart, err := uc.AddItem(context.Background(), "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestClearCart(t *testing.T) {
	repo := newMockCartRepo()
	uc := NewCartUsecase(repo)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "c1", product("p1", "Red Shirt", 30))
	require.NoError(t, err)

	require.NoError(t, uc.ClearCart(ctx, "c1"))
	assert.Equal(t, []string{"c1"}, repo.deleted)

	cart, err := uc.GetCart(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
