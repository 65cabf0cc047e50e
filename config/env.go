// Package config resolves the storefront configuration.
//
// Values are layered, later sources winning:
//
//	built-in defaults  <  config/app.json  <  .env  <  process environment
//
// The merged key/value set is decoded into a typed Config. Secrets have no
// built-in value; production refuses to start without them.
package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	defaultJSONPath  = "config/app.json"
	defaultEnvPath   = ".env"
	defaultSQLiteDSN = "storefront.db?_foreign_keys=1"

	// MinBcryptCost is the lowest password hashing cost accepted.
	MinBcryptCost = 10
	maxBcryptCost = 31

	minProductionSecret = 32
)

// Config is the fully resolved application configuration.
type Config struct {
	AppEnv   string `env:"APP_ENV, default=local"`
	AppPort  string `env:"APP_PORT, default=8080"`
	LogLevel string `env:"LOG_LEVEL, default=debug"`

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
	Storage  StorageConfig
	LogSink  LogSinkConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DATABASE_DSN"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type SessionConfig struct {
	Driver     string        `env:"SESSION_DRIVER, default=redis"`
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL, default=2h"`
	CookieName string        `env:"SESSION_COOKIE, default=storefront_session"`
	Secure     bool          `env:"SESSION_SECURE, default=false"`
}

type AuthConfig struct {
	BcryptCost     int     `env:"BCRYPT_COST, default=10"`
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT, default=0.2"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST, default=5"`
}

type StorageConfig struct {
	Disk       string `env:"STORAGE_DISK, default=local"`
	LocalRoot  string `env:"STORAGE_LOCAL_ROOT, default=storage"`
	URL        string `env:"STORAGE_URL, default=/storage"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION, default=us-east-1"`
	S3Key      string `env:"S3_KEY"`
	S3Secret   string `env:"S3_SECRET"`
	S3Endpoint string `env:"S3_ENDPOINT"`
	S3URL      string `env:"S3_URL"`
}

// LogSinkConfig enables shipping log lines to MongoDB when URI is set.
type LogSinkConfig struct {
	MongoURI        string `env:"LOG_MONGO_URI"`
	MongoDB         string `env:"LOG_MONGO_DB, default=storefront"`
	MongoCollection string `env:"LOG_MONGO_COLLECTION, default=logs"`
}

// AdminConfig drives the admin seeder. Both fields empty disables it.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "prod":
		return true
	}
	return false
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}

// Load reads config/app.json, .env and the process environment.
func Load() (*Config, error) {
	return LoadFrom(defaultJSONPath, defaultEnvPath, envconfig.OsLookuper())
}

// LoadFrom is Load with explicit sources. Missing files are not an error.
func LoadFrom(jsonPath, envPath string, environ envconfig.Lookuper) (*Config, error) {
	file := map[string]string{}

	if err := mergeJSONConfig(jsonPath, file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MultiLookuper(environ, envconfig.MapLookuper(file)),
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.DSN == "" {
			c.Database.DSN = defaultSQLiteDSN
		}
	case "postgres", "mysql", "sqlserver":
		if c.Database.DSN == "" {
			return fmt.Errorf("config: DATABASE_DSN is required for DB_DRIVER %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", c.Database.Driver)
	}

	switch c.Session.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("config: unsupported SESSION_DRIVER %q", c.Session.Driver)
	}

	if c.Session.TTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}

	if c.Session.Secret == "" {
		if c.IsProduction() {
			return errors.New("config: SESSION_SECRET is required in production")
		}
		// Sessions do not survive a restart without a configured secret.
		c.Session.Secret = randomSecret()
	} else if c.IsProduction() && len(c.Session.Secret) < minProductionSecret {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d characters in production", minProductionSecret)
	}

	if c.Auth.BcryptCost < MinBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and %d", MinBcryptCost, maxBcryptCost)
	}

	switch c.Storage.Disk {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("config: S3_BUCKET is required when STORAGE_DISK=s3")
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE_DISK %q", c.Storage.Disk)
	}

	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return nil
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64, bool:
			s = fmt.Sprint(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for key, value := range values {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = value
	}
	return nil
}
