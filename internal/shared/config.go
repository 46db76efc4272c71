package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	APIBase     string
	APIRPS      int
	StaticDir   string
	TokenTTL    time.Duration
	PageTimeout time.Duration // 0 disables
	RedisAddr   string        // empty disables the fragment cache
	RedisDB     int
	RedisPass   string
	FragmentTTL time.Duration
	MySQLDSN    string // empty disables the failure log
}

func Load() Config {
	// .env is optional; real env vars win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		APIBase:     env("API_BASE_URL", "http://127.0.0.1:5000/api/v1"),
		APIRPS:      atoi("API_RPS", 20),
		StaticDir:   env("STATIC_DIR", "static"),
		TokenTTL:    time.Duration(atoi("TOKEN_TTL_SECONDS", 3600)) * time.Second,
		PageTimeout: time.Duration(atoi("PAGE_TIMEOUT_SECONDS", 0)) * time.Second,
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		FragmentTTL: time.Duration(atoi("FRAGMENT_TTL_SECONDS", 300)) * time.Second,
		MySQLDSN:    env("MYSQL_DSN", ""),
	}
	if c.TokenTTL <= 0 {
		log.Warn().Msg("TOKEN_TTL_SECONDS must be positive, using 3600")
		c.TokenTTL = time.Hour
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
