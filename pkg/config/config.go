package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "F2H"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv         = "F2H_APP_ENV"
	EnvPort           = "F2H_APP_PORT"
	EnvRedisURL       = "F2H_REDIS_URL"
	EnvCatalogBaseURL = "F2H_CATALOG_BASE_URL"
	EnvOrdersBaseURL  = "F2H_ORDERS_BASE_URL"
	EnvRemoteCartURL  = "F2H_REMOTE_CART_URL"
)

type Config struct {
	App        AppConfig
	Redis      RedisConfig
	Catalog    CatalogConfig
	Orders     OrdersConfig
	RemoteCart RemoteCartConfig
	CORS       CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"F2H_APP_ENV" required:"true"`
	Port         string `envconfig:"F2H_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"F2H_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"F2H_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"F2H_REDIS_URL" required:"true"`
	Address      string        `envconfig:"F2H_REDIS_ADDR"`
	Password     string        `envconfig:"F2H_REDIS_PASSWORD"`
	DB           int           `envconfig:"F2H_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"F2H_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"F2H_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"F2H_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"F2H_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"F2H_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig points at the upstream product catalog API.
type CatalogConfig struct {
	BaseURL string        `envconfig:"F2H_CATALOG_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"F2H_CATALOG_TIMEOUT" default:"10s"`
}

// OrdersConfig points at the upstream order history API.
type OrdersConfig struct {
	BaseURL string        `envconfig:"F2H_ORDERS_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"F2H_ORDERS_TIMEOUT" default:"10s"`
}

// RemoteCartConfig points at the remote cart-add endpoint used by the reorder flow.
type RemoteCartConfig struct {
	AddItemURL string        `envconfig:"F2H_REMOTE_CART_URL" required:"true"`
	Timeout    time.Duration `envconfig:"F2H_REMOTE_CART_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"F2H_CORS_ALLOWED_ORIGINS"`
}
