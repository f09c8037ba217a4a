package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ghaniswara/workmatch/pkg/path"
	"github.com/joho/godotenv"
)

type IConfig interface {
	Get(key string) string
}

type Config struct {
	Key map[string]string
	Env string
}

var defaults = map[string]string{
	"API_BASE_URL":      "http://localhost:8080/api",
	"HTTP_TIMEOUT":      "10s",
	"TOKEN_STORE":       "file",
	"TOKEN_FILE":        "",
	"TOKEN_PROFILE":     "default",
	"REDIS_HOST":        "localhost",
	"REDIS_PORT":        "6379",
	"REDIS_PASSWORD":    "",
	"POLL_INTERVAL":     "5s",
	"FLASH_DURATION":    "3s",
	"REDIRECT_DELAY":    "2s",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "text",
	"PORT":              "8080",
	"DB_DRIVER":         "sqlite",
	"DB_DSN":            "file::memory:?cache=shared",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB_NAME":  "workmatch",
	"JWT_SECRET":        "workmatch-dev-secret",
	"JWT_TTL":           "24h",
	"SEED_USERS":        "0",
}

// NewConfig loads the nearest .env (if any) and resolves every known key,
// preferring <ENV>_<KEY> over <KEY> over the built-in default.
func NewConfig(env string) (*Config, error) {
	env = strings.ToUpper(env)

	basePath, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := path.FindRoot(basePath, ".env", false)
	switch {
	case err == nil:
		if err := godotenv.Load(root + "/.env"); err != nil {
			return nil, err
		}
	case !errors.Is(err, path.ErrNotFound):
		return nil, err
	}

	cfg := &Config{Key: make(map[string]string, len(defaults)), Env: env}
	for key, def := range defaults {
		cfg.Key[key] = lookup(env, key, def)
	}

	return cfg, nil
}

func lookup(env, key, defaultValue string) string {
	if env != "" {
		if v := getEnv(env+"_"+key, ""); v != "" {
			return v
		}
	}
	return getEnv(key, defaultValue)
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) Get(key string) string {
	return c.Key[key]
}

func (c *Config) Set(key, value string) {
	c.Key[key] = value
}

func (c *Config) GetInt(key string) int {
	v, err := strconv.Atoi(c.Get(key))
	if err != nil {
		v, _ = strconv.Atoi(defaults[key])
	}
	return v
}

func (c *Config) GetDuration(key string) time.Duration {
	d, err := time.ParseDuration(c.Get(key))
	if err != nil {
		d, _ = time.ParseDuration(defaults[key])
	}
	return d
}
