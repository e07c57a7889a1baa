package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	OpsPort  string `env:"OPS_PORT,  default=9090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Routes  RoutesConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	ImportWorkers int `env:"IMPORT_WORKERS, default=4"`
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type RoutesConfig struct {
	LoginPath     string `env:"LOGIN_PATH,     default=/admin/login"`
	ForbiddenPath string `env:"FORBIDDEN_PATH"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER, default=memory"`
	Prefix string `env:"STORAGE_PREFIX, default=crm"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crm_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Development reports whether the console runs with pretty logs.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case "memory", "redis", "mongo":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER %q: want memory, redis or mongo", cfg.Storage.Driver)
	}
	if cfg.Routes.ForbiddenPath == "" {
		cfg.Routes.ForbiddenPath = cfg.Routes.LoginPath
	}
	return &cfg, nil
}
