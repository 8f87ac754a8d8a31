package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/usecase"
	"github.com/lamnguyen-ct/storefront/pkg/crypto"
)

type CartController interface {
	GetCart(c echo.Context) error
	AddItem(c echo.Context) error
	UpdateItem(c echo.Context) error
	RemoveItem(c echo.Context) error
	ClearCart(c echo.Context) error
}

// CartIdentity resolves which cart a request belongs to via the sealed
// cart cookie.
type CartIdentity struct {
	sealer     crypto.Sealer
	cookieName string
}

func NewCartIdentity(conf *config.Config, sealer crypto.Sealer) CartIdentity {
	return CartIdentity{
		sealer:     sealer,
		cookieName: conf.Auth.CartCookie,
	}
}

// CartID returns the shopper's cart id from the sealed cart cookie,
// minting a fresh id and setting the cookie when the shopper has none
// yet or the cookie cannot be opened.
func (ci CartIdentity) CartID(c echo.Context) string {
	if cookie, err := c.Cookie(ci.cookieName); err == nil && cookie.Value != "" {
		if id, err := ci.sealer.Open(cookie.Value); err == nil && id != "" {
			return id
		}
	}

	id := uuid.NewString()
	if sealed, err := ci.sealer.Seal(id); err == nil {
		c.SetCookie(&http.Cookie{
			Name:     ci.cookieName,
			Value:    sealed,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 365,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}

type cartController struct {
	cartUsecase usecase.CartUsecase
	identity    CartIdentity
}

func NewCartController(cartUsecase usecase.CartUsecase, identity CartIdentity) CartController {
	return &cartController{
		cartUsecase: cartUsecase,
		identity:    identity,
	}
}

func cartResponse(cart *models.Cart) map[string]any {
	return map[string]any{
		"data":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	}
}

func (cc *cartController) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	cart, err := cc.cartUsecase.GetCart(ctx, cc.identity.CartID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, cartResponse(cart))
}

func (cc *cartController) AddItem(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	cart, err := cc.cartUsecase.AddItem(ctx, cc.identity.CartID(c), product)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, cartResponse(cart))
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (cc *cartController) UpdateItem(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing product ID")
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	cart, err := cc.cartUsecase.UpdateQuantity(ctx, cc.identity.CartID(c), productID, req.Quantity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, cartResponse(cart))
}

func (cc *cartController) RemoveItem(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing product ID")
	}

	ctx := c.Request().Context()
	cart, err := cc.cartUsecase.RemoveItem(ctx, cc.identity.CartID(c), productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, cartResponse(cart))
}

func (cc *cartController) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	if err := cc.cartUsecase.ClearCart(ctx, cc.identity.CartID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}
