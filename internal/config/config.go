package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Stripe   StripeConfig   `envPrefix:"STRIPE_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	// PublicOrigin is the fallback origin for post-payment redirect URLs
	// when the request carries no Origin header.
	PublicOrigin string `env:"PUBLIC_ORIGIN" envDefault:"http://localhost:8080"`
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"storefront"`
}

type CatalogConfig struct {
	ProductsURL string `env:"PRODUCTS_URL,required"`
}

type StripeConfig struct {
	SecretKey string `env:"SECRET_KEY,required"`
	Currency  string `env:"CURRENCY" envDefault:"usd"`
}

type AuthConfig struct {
	// BaseURL of the hosted auth provider, e.g. https://xyz.supabase.co
	BaseURL string `env:"BASE_URL,required"`
	APIKey  string `env:"API_KEY,required"`
	// CookieKey is a base64 encoded 32-byte key sealing session and cart
	// cookies.
	CookieKey         string   `env:"COOKIE_KEY,required"`
	SessionCookie     string   `env:"SESSION_COOKIE" envDefault:"sf_session"`
	CartCookie        string   `env:"CART_COOKIE" envDefault:"sf_cart"`
	SignInPath        string   `env:"SIGNIN_PATH" envDefault:"/signin"`
	ProtectedPrefixes []string `env:"PROTECTED_PREFIXES" envDefault:"/protected,/dashboard"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS"`
	Topic   string   `env:"TOPIC" envDefault:"storefront.orders"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
