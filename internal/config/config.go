// Package config loads process-wide settings once at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Env      string         `koanf:"env" validate:"required"`
	Server   ServerConfig   `koanf:"server"`
	Stripe   StripeConfig   `koanf:"stripe"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Payment  PaymentConfig  `koanf:"payment"`
	Logger   LoggerConfig   `koanf:"logger"`
}

type ServerConfig struct {
	Port             string        `koanf:"port" validate:"required"`
	PublicURL        string        `koanf:"public_url"`
	CORSAllowOrigins string        `koanf:"cors_allow_origins" validate:"required"`
	RateLimitMax     int           `koanf:"rate_limit_max" validate:"min=0"`
	RateLimitWindow  time.Duration `koanf:"rate_limit_window"`
}

type StripeConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
	// BaseURL overrides the Stripe API host, used against stripe-mock.
	BaseURL string `koanf:"base_url"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN renders the connection string understood by the postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Host       string        `koanf:"host"`
	Port       string        `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	HistoryTTL time.Duration `koanf:"history_ttl"`
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// PaymentConfig holds the values stamped on every stored payment. The
// reference ids stand in for the user, event and payment-type subsystems that
// do not exist yet; 0 leaves the column NULL.
type PaymentConfig struct {
	Description   string `koanf:"description" validate:"required"`
	Currency      string `koanf:"currency"`
	CardResolver  string `koanf:"card_resolver" validate:"oneof=unavailable placeholder"`
	PaymentTypeID uint   `koanf:"type_id"`
	UserID        uint   `koanf:"user_id"`
	EventID       uint   `koanf:"event_id"`
}

type LoggerConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// NewLogger builds the process logger at the configured level.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

var defaults = map[string]interface{}{
	"env":                         "development",
	"server.port":                 "7000",
	"server.public_url":           "http://localhost:7000",
	"server.cors_allow_origins":   "*",
	"server.rate_limit_max":       0,
	"server.rate_limit_window":    "1m",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "postgres",
	"database.name":               "pagos",
	"database.ssl_mode":           "disable",
	"database.max_open_conns":     100,
	"database.max_idle_conns":     10,
	"database.conn_max_lifetime":  "1h",
	"database.conn_max_idle_time": "30m",
	"redis.port":                  "6379",
	"redis.db":                    0,
	"redis.history_ttl":           "5m",
	"payment.description":         "Gaming Keyboard",
	"payment.card_resolver":       "unavailable",
	"logger.level":                "info",
}

// envKeys maps environment variables onto config paths. PRIVATE_KEY is the
// name the service has always read the Stripe secret from; a non-empty
// STRIPE_SECRET_KEY overrides it.
var envKeys = map[string]string{
	"ENV":                   "env",
	"PORT":                  "server.port",
	"PUBLIC_URL":            "server.public_url",
	"CORS_ALLOW_ORIGINS":    "server.cors_allow_origins",
	"RATE_LIMIT_MAX":        "server.rate_limit_max",
	"RATE_LIMIT_WINDOW":     "server.rate_limit_window",
	"PRIVATE_KEY":           "stripe.secret_key",
	"STRIPE_BASE_URL":       "stripe.base_url",
	"DB_HOST":               "database.host",
	"DB_PORT":               "database.port",
	"DB_USER":               "database.user",
	"DB_PASSWORD":           "database.password",
	"DB_NAME":               "database.name",
	"DB_SSLMODE":            "database.ssl_mode",
	"DB_MAX_OPEN_CONNS":     "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":     "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME":  "database.conn_max_lifetime",
	"DB_CONN_MAX_IDLE_TIME": "database.conn_max_idle_time",
	"REDIS_HOST":            "redis.host",
	"REDIS_PORT":            "redis.port",
	"REDIS_PASSWORD":        "redis.password",
	"REDIS_DB":              "redis.db",
	"HISTORY_CACHE_TTL":     "redis.history_ttl",
	"PAYMENT_DESCRIPTION":   "payment.description",
	"PAYMENT_CURRENCY":      "payment.currency",
	"CARD_RESOLVER":         "payment.card_resolver",
	"PAYMENT_TYPE_ID":       "payment.type_id",
	"PAYMENT_USER_ID":       "payment.user_id",
	"PAYMENT_EVENT_ID":      "payment.event_id",
	"LOG_LEVEL":             "logger.level",
}

const stripeKeyEnv = "STRIPE_SECRET_KEY"

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}
}

// Load reads the .env file, merges defaults with the environment and
// validates the result.
func Load() (*Config, error) {
	LoadEnv()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[strings.ToUpper(s)]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	err = k.Load(env.ProviderWithValue(stripeKeyEnv, ".", func(key, value string) (string, interface{}) {
		if key != stripeKeyEnv || value == "" {
			return "", nil
		}
		return "stripe.secret_key", value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load stripe key: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
