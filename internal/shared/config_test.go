package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hbnb_web/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "API_BASE_URL", "API_RPS", "TOKEN_TTL_SECONDS", "PAGE_TIMEOUT_SECONDS", "REDIS_ADDR", "MYSQL_DSN"} {
		t.Setenv(k, "")
	}
	c := shared.Load()

	assert.Equal(t, "prod", c.AppEnv)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "http://127.0.0.1:5000/api/v1", c.APIBase)
	assert.Equal(t, 20, c.APIRPS)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Zero(t, c.PageTimeout)
	assert.Empty(t, c.RedisAddr)
	assert.Empty(t, c.MySQLDSN)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.internal:5000/api/v1")
	t.Setenv("API_RPS", "5")
	t.Setenv("TOKEN_TTL_SECONDS", "120")
	t.Setenv("PAGE_TIMEOUT_SECONDS", "15")
	t.Setenv("FRAGMENT_TTL_SECONDS", "60")
	c := shared.Load()

	assert.Equal(t, "http://api.internal:5000/api/v1", c.APIBase)
	assert.Equal(t, 5, c.APIRPS)
	assert.Equal(t, 2*time.Minute, c.TokenTTL)
	assert.Equal(t, 15*time.Second, c.PageTimeout)
	assert.Equal(t, time.Minute, c.FragmentTTL)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("API_RPS", "fast")
	t.Setenv("TOKEN_TTL_SECONDS", "-5")
	c := shared.Load()

	assert.Equal(t, 20, c.APIRPS)
	assert.Equal(t, time.Hour, c.TokenTTL)
}
