package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/repo/authapi"
	"github.com/lamnguyen-ct/storefront/internal/repo/catalog"
	"github.com/lamnguyen-ct/storefront/internal/repo/mongodb"
	"github.com/lamnguyen-ct/storefront/internal/repo/payments"
	"github.com/lamnguyen-ct/storefront/internal/server"
	"github.com/lamnguyen-ct/storefront/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,
			newSealer,
			newPublisher,

			server.NewController,
			server.NewCartController,
			server.NewCheckoutController,
			server.NewAuthController,
			server.NewCartIdentity,

			usecase.NewCatalogUsecase,
			usecase.NewCartUsecase,
			usecase.NewCheckoutUsecase,
			usecase.NewAuthUsecase,

			mongodb.NewCartRepository,
			mongodb.NewOrderRepository,

			catalog.NewClient,
			authapi.NewClient,
			payments.NewClient,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
