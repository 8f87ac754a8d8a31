package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/labstack/echo/v4"
	echomdw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/server/middleware"
	"github.com/lamnguyen-ct/storefront/internal/usecase"
	"github.com/lamnguyen-ct/storefront/pkg/crypto"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	authUsecase usecase.AuthUsecase,
	sealer crypto.Sealer,
	handler Controller,
	cartHandler CartController,
	checkoutHandler CheckoutController,
	authHandler AuthController,
) {
	log := logger.MustNamed("http")

	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(log)

	sessionConfig := middleware.SessionConfig{
		Auth:              authUsecase,
		Sealer:            sealer,
		CookieName:        conf.Auth.SessionCookie,
		SignInPath:        conf.Auth.SignInPath,
		ProtectedPrefixes: conf.Auth.ProtectedPrefixes,
	}

	logConfig := middleware.LogRequestConfig{
		Logger: log,
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
	}

	e.Use(middleware.Metrics())
	e.Use(middleware.RequestID())
	e.Use(middleware.LogRequest(logConfig))
	e.Use(echomdw.RecoverWithConfig(echomdw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw("PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))
	e.Use(middleware.CORS(regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1)(:\d+)?$`)))
	e.Use(middleware.SessionGate(sessionConfig))

	e.GET("/health", handler.Health)

	// storefront pages
	e.GET(conf.Auth.SignInPath, authHandler.SignInPage)
	e.POST(conf.Auth.SignInPath, authHandler.SignIn)
	e.POST("/signup", authHandler.SignUp)
	e.POST("/signout", authHandler.SignOut)
	e.GET("/dashboard", authHandler.Dashboard)
	e.GET("/protected/orders", checkoutHandler.OrdersPage)
	e.POST("/checkout", checkoutHandler.Checkout)
	e.GET("/checkout/success", checkoutHandler.SuccessPage)
	e.GET("/checkout/failure", checkoutHandler.FailurePage)

	api := e.Group("/api/v1")
	api.GET("/products", handler.ListProducts)

	api.GET("/cart", cartHandler.GetCart)
	api.DELETE("/cart", cartHandler.ClearCart)
	api.POST("/cart/items", cartHandler.AddItem)
	api.PUT("/cart/items/:id", cartHandler.UpdateItem)
	api.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	api.POST("/checkout/session", checkoutHandler.CreateSession)
	api.GET("/checkout/verify", checkoutHandler.VerifyPayment)

	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/auth/signout", authHandler.SignOut)
	api.GET("/auth/me", authHandler.Me, middleware.RequireSession(sessionConfig))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting HTTP server", "addr", conf.Server.Addr())
				if err := e.Start(conf.Server.Addr()); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
