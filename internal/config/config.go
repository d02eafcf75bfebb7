package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// AccessGlobal exposes every product to every user; writes require admin.
	AccessGlobal = "global"
	// AccessOwner scopes reads and writes to the caller's own products.
	AccessOwner = "owner"
)

// Config is the resolved runtime configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Catalog  CatalogConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
}

type AppConfig struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CatalogConfig struct {
	AccessMode     string
	CurrencyPrefix string
	PublicBaseURL  string
}

type RabbitMQConfig struct {
	URL string
}

// Enabled reports whether catalog events should be published.
func (c RabbitMQConfig) Enabled() bool { return c.URL != "" }

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	StatsTTL time.Duration
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "toko.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("CATALOG_ACCESS_MODE", AccessGlobal)
	v.SetDefault("REPORT_CURRENCY_PREFIX", "Rs.")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATS_CACHE_TTL", 30*time.Second)
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "products")
	v.SetDefault("MINIO_USE_SSL", false)
}

// LoadDotEnv loads variables from the given files when present. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads the configuration from v (defaults + environment) and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port:      v.GetString("APP_PORT"),
			Env:       v.GetString("APP_ENV"),
			LogLevel:  v.GetString("LOG_LEVEL"),
			LogFormat: v.GetString("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Catalog: CatalogConfig{
			AccessMode:     strings.ToLower(strings.TrimSpace(v.GetString("CATALOG_ACCESS_MODE"))),
			CurrencyPrefix: v.GetString("REPORT_CURRENCY_PREFIX"),
			PublicBaseURL:  strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			StatsTTL: v.GetDuration("STATS_CACHE_TTL"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	switch c.Catalog.AccessMode {
	case AccessGlobal, AccessOwner:
	default:
		return fmt.Errorf("unsupported CATALOG_ACCESS_MODE %q", c.Catalog.AccessMode)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.MinIO.Enabled() && c.MinIO.Bucket == "" {
		return fmt.Errorf("MINIO_BUCKET is required when MINIO_ENDPOINT is set")
	}
	return nil
}

// RequireSecret fails when no JWT secret is configured. Only the HTTP server needs one.
func (c *Config) RequireSecret() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
