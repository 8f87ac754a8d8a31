package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/repo/authapi"
	"github.com/lamnguyen-ct/storefront/internal/repo/payments"
	"github.com/lamnguyen-ct/storefront/internal/server/middleware"
	"github.com/lamnguyen-ct/storefront/internal/usecase"
	"github.com/lamnguyen-ct/storefront/pkg/crypto"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	return e
}

func newTestSealer(t *testing.T) crypto.Sealer {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	sealer, err := crypto.NewSealer(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	return sealer
}

func sealValue(t *testing.T, identity CartIdentity, value string) string {
	t.Helper()
	sealed, err := identity.sealer.Seal(value)
	require.NoError(t, err)
	return sealed
}

func assertHTTPError(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, status, httpErr.Code)
}

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{PublicOrigin: "http://shop.test"},
		Auth: config.AuthConfig{
			SessionCookie: "sf_session",
			CartCookie:    "sf_cart",
			SignInPath:    "/signin",
		},
	}
}

// mockCartUsecase keeps carts in memory, keyed by cart id.
type mockCartUsecase struct {
	carts map[string]*models.Cart
}

func newMockCartUsecase() *mockCartUsecase {
	return &mockCartUsecase{carts: map[string]*models.Cart{}}
}

func (m *mockCartUsecase) cart(cartID string) *models.Cart {
	if cart, ok := m.carts[cartID]; ok {
		return cart
	}
	cart := models.NewCart(cartID)
	m.carts[cartID] = cart
	return cart
}

func (m *mockCartUsecase) GetCart(_ context.Context, cartID string) (*models.Cart, error) {
	return m.cart(cartID), nil
}

func (m *mockCartUsecase) AddItem(_ context.Context, cartID string, product models.Product) (*models.Cart, error) {
	cart := m.cart(cartID)
	cart.AddItem(product)
	return cart, nil
}

func (m *mockCartUsecase) RemoveItem(_ context.Context, cartID, productID string) (*models.Cart, error) {
	cart := m.cart(cartID)
	cart.RemoveItem(productID)
	return cart, nil
}

func (m *mockCartUsecase) UpdateQuantity(_ context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	cart := m.cart(cartID)
	cart.SetQuantity(productID, quantity)
	return cart, nil
}

func (m *mockCartUsecase) ClearCart(_ context.Context, cartID string) error {
	delete(m.carts, cartID)
	return nil
}

type mockCheckoutUsecase struct {
	session   *payments.Session
	createErr error
	order     *models.Order
	verifyErr error
	orders    []*models.Order

	createdWith []models.CartItem
	verifiedID  string
}

func (m *mockCheckoutUsecase) CreateSession(_ context.Context, items []models.CartItem, _ string) (*payments.Session, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}
	m.createdWith = items
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.session, nil
}

func (m *mockCheckoutUsecase) VerifyPayment(_ context.Context, sessionID string) (*models.Order, error) {
	m.verifiedID = sessionID
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.order, nil
}

func (m *mockCheckoutUsecase) RecentOrders(context.Context, int64) ([]*models.Order, error) {
	return m.orders, nil
}

type mockAuthUsecase struct {
	session   *authapi.Session
	signInErr error
	user      *models.User
	signUpErr error
}

func (m *mockAuthUsecase) SignUp(context.Context, string, string) (*models.User, error) {
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return m.user, nil
}

func (m *mockAuthUsecase) SignIn(context.Context, string, string) (*authapi.Session, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.session, nil
}

func (m *mockAuthUsecase) CurrentUser(context.Context, string) (*models.User, error) {
	if m.user == nil {
		return nil, models.ErrUnauthorized
	}
	return m.user, nil
}

type mockCatalogUsecase struct {
	products   []models.Product
	categories []string
	err        error

	gotQuery usecase.CatalogQuery
}

func (m *mockCatalogUsecase) ListProducts(_ context.Context, query usecase.CatalogQuery) ([]models.Product, []string, error) {
	m.gotQuery = query
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.products, m.categories, nil
}
