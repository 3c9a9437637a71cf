package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration. It is loaded once at startup
// and never mutated afterwards; every component receives what it needs by
// injection.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// ClientOrigin is the SPA origin allowed by CORS; credentials are
	// enabled because the auth cookie rides on cross-origin requests.
	ClientOrigin string `env:"CLIENT_ORIGIN, default=http://localhost:3000"`

	Auth  AuthConfig
	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// JWTSecret signs every token; rotating it invalidates all of them.
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`
	// BcryptCost is the password hashing cost factor.
	BcryptCost int `env:"BCRYPT_COST, default=10"`
	// SetupKey gates superadmin creation. Checked before any validation.
	SetupKey string `env:"SUPERADMIN_SETUP_KEY"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	Window      time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mediscan"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Production reports whether the service runs in production mode; the
// auth cookie's Secure flag is tied to this.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
