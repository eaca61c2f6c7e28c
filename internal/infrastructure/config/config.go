package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// insecureSecret is the placeholder the legacy deployment shipped with. It is
// rejected outside development instead of silently accepted.
const insecureSecret = "please_change_me"

type Config struct {
	Port      string        `env:"PORT,      default=4000"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=skprofiling"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// enforces startup invariants.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate refuses a missing or placeholder signing secret anywhere but
// development. Fail fast at startup rather than sign tokens with a secret
// everyone knows.
func (c *Config) Validate() error {
	if c.Development() {
		if c.JWTSecret == "" {
			c.JWTSecret = insecureSecret
		}
		return nil
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set when ENV=%s", c.Env)
	}
	if c.JWTSecret == insecureSecret {
		return fmt.Errorf("config: JWT_SECRET is the insecure default; set a real secret")
	}
	return nil
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}
