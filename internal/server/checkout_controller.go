package server

import (
	"errors"
	"net/http"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/labstack/echo/v4"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/internal/server/views"
	"github.com/lamnguyen-ct/storefront/internal/usecase"
)

type CheckoutController interface {
	CreateSession(c echo.Context) error
	Checkout(c echo.Context) error
	VerifyPayment(c echo.Context) error
	SuccessPage(c echo.Context) error
	FailurePage(c echo.Context) error
	OrdersPage(c echo.Context) error
}

type checkoutController struct {
	checkoutUsecase usecase.CheckoutUsecase
	cartUsecase     usecase.CartUsecase
	identity        CartIdentity
	publicOrigin    string
	log             *logger.Logger
}

func NewCheckoutController(
	conf *config.Config,
	checkoutUsecase usecase.CheckoutUsecase,
	cartUsecase usecase.CartUsecase,
	identity CartIdentity,
) CheckoutController {
	return &checkoutController{
		checkoutUsecase: checkoutUsecase,
		cartUsecase:     cartUsecase,
		identity:        identity,
		publicOrigin:    conf.Server.PublicOrigin,
		log:             logger.MustNamed("checkout_http"),
	}
}

// origin picks the base for the payment provider's redirect URLs: the
// caller's Origin header when present, the configured public origin
// otherwise.
func (cc *checkoutController) origin(c echo.Context) string {
	if origin := c.Request().Header.Get("Origin"); origin != "" {
		return origin
	}
	return cc.publicOrigin
}

type CreateSessionRequest struct {
	Items []models.CartItem `json:"items"`
}

// CreateSession is the JSON endpoint: the caller supplies the items and
// receives the hosted payment page URL to redirect to. A body without
// items falls back to the shopper's persisted cart.
func (cc *checkoutController) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	items := req.Items
	if len(items) == 0 {
		if cart, err := cc.cartUsecase.GetCart(ctx, cc.identity.CartID(c)); err == nil {
			items = cart.Items
		}
	}

	session, err := cc.checkoutUsecase.CreateSession(ctx, items, cc.origin(c))
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, "Please provide items to checkout")
		}
		cc.log.Errorw("failed to create checkout session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating checkout session")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"sessionId": session.ID,
		"url":       session.URL,
	})
}

// Checkout is the browser flavour: it reads the shopper's persisted
// cart and answers with a redirect, either to the hosted payment page
// or to the local failure page carrying the error.
func (cc *checkoutController) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := cc.cartUsecase.GetCart(ctx, cc.identity.CartID(c))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, usecase.FailureRedirectURL("", err))
	}

	session, err := cc.checkoutUsecase.CreateSession(ctx, cart.Items, cc.origin(c))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, usecase.FailureRedirectURL("", err))
	}

	return c.Redirect(http.StatusSeeOther, session.URL)
}

func (cc *checkoutController) VerifyPayment(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session_id")
	}

	ctx := c.Request().Context()
	order, err := cc.checkoutUsecase.VerifyPayment(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotCompleted) {
			return echo.NewHTTPError(http.StatusPaymentRequired, "Payment not completed")
		}
		cc.log.Errorw("failed to verify payment", "session_id", sessionID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error verifying payment")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"order":   order,
	})
}

// SuccessPage verifies the returned session server side before showing
// the confirmation. A verified payment also clears the shopper's cart.
func (cc *checkoutController) SuccessPage(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return cc.renderSuccess(c, false)
	}

	ctx := c.Request().Context()
	if _, err := cc.checkoutUsecase.VerifyPayment(ctx, sessionID); err != nil {
		cc.log.Warnw("payment verification failed", "session_id", sessionID, "error", err)
		return cc.renderSuccess(c, false)
	}

	if err := cc.cartUsecase.ClearCart(ctx, cc.identity.CartID(c)); err != nil {
		cc.log.Warnw("failed to clear cart after checkout", "error", err)
	}
	return cc.renderSuccess(c, true)
}

func (cc *checkoutController) renderSuccess(c echo.Context, verified bool) error {
	page, err := views.CheckoutSuccess(verified)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}

func (cc *checkoutController) OrdersPage(c echo.Context) error {
	ctx := c.Request().Context()
	orders, err := cc.checkoutUsecase.RecentOrders(ctx, 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, err := views.Orders(orders)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}

// FailurePage shows why the payment did not complete. The message comes
// from the error query parameter; without one the shopper gets the
// generic no-charge explanation.
func (cc *checkoutController) FailurePage(c echo.Context) error {
	page, err := views.CheckoutFailure(c.QueryParam("error"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, page)
}
