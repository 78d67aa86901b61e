package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/task-tracker/internal/config"
	"github.com/iliyamo/task-tracker/internal/utils"
)

func TestBuildRateKey_SubjectAfterAuth(t *testing.T) {
	// The limiter runs after JWTAuth on protected groups, so subject-based
	// strategies must key on the verified email, never on "anon".
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "subject"}
	tok, err := utils.NewAccessToken(testSecret, "alice@x.com", 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/get-task", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var key string
	capture := func(c echo.Context) error {
		key = buildRateKey(cfg, c)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(testSecret)(capture)(c))
	assert.Equal(t, "rl:subject:alice@x.com", key)
}

func TestBuildRateKey_AnonWithoutAuth(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "subject"}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "rl:subject:anon", buildRateKey(cfg, c))
}

func TestBuildRateKey_ForIP(t *testing.T) {
	// Open endpoints use an IP-keyed copy of the config regardless of the
	// configured strategy.
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "subject"}.ForIP()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "rl:ip:192.0.2.1", buildRateKey(cfg, c))
}

func TestBuildRateKey_SubjectRoute(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "subject_route"}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/get-task", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/get-task")
	c.Set(ContextEmailKey, "alice@x.com")

	assert.Equal(t, "rl:subject:alice@x.com:route:GET /get-task", buildRateKey(cfg, c))
}
