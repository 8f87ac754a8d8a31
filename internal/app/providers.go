package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/events"
	"github.com/lamnguyen-ct/storefront/internal/repo/mongodb"
	"github.com/lamnguyen-ct/storefront/pkg/crypto"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	opts := options.Client().
		SetAppName("storefront").
		ApplyURI(cfg.Database.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	mongoDB := mongoClient.Database(cfg.Database.Database)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return mongoClient.Disconnect(ctx)
		},
	})

	return &mongodb.DB{
		Client:   mongoClient,
		Database: mongoDB,
	}, nil
}

func newSealer(cfg *config.Config) (crypto.Sealer, error) {
	return crypto.NewSealer(cfg.Auth.CookieKey)
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config) events.Publisher {
	publisher := events.NewPublisher(cfg)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
