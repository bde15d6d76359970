package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"

	CounterMongo  = "mongo"
	CounterRedis  = "redis"
	CounterMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	// SeedPath points to an optional YAML file of bootstrap records.
	SeedPath string `env:"SEED_PATH"`
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"JWT_TTL,               default=24h"`
	BcryptCost      int           `env:"BCRYPT_COST,           default=12"`
	DefaultPassword string        `env:"DEFAULT_USER_PASSWORD"`
}

type StorageConfig struct {
	Driver         string `env:"STORAGE_DRIVER,     default=mongo"`
	CounterBackend string `env:"ID_COUNTER_BACKEND, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=university_records"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED,  default=true"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then the process environment, using
// go-envconfig. Real environment variables win over .env values.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StorageMemory, c.Storage.Driver)
	}

	switch c.Storage.CounterBackend {
	case CounterMongo:
		if c.Storage.Driver != StorageMongo {
			return fmt.Errorf("ID_COUNTER_BACKEND=mongo requires STORAGE_DRIVER=mongo")
		}
	case CounterRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("ID_COUNTER_BACKEND=redis requires REDIS_ENABLED=true")
		}
	case CounterMemory:
	default:
		return fmt.Errorf("ID_COUNTER_BACKEND must be mongo, redis or memory, got %q", c.Storage.CounterBackend)
	}

	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	return nil
}
