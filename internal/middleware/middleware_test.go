package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/cinereserve/internal/config"
	"github.com/iliyamo/cinereserve/internal/utils"
)

const secret = "s3cret"

func ok(c echo.Context) error { return c.String(http.StatusOK, subject(c)) }

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRole(t *testing.T) {
	e := echo.New()
	e.GET("/admin", ok, JWTAuth(secret), RequireRole(utils.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/admin", "garbage").Code)

	admin, err := utils.NewAccessToken(secret, "admin", utils.RoleAdmin, 5)
	require.NoError(t, err)
	rec := serve(e, http.MethodGet, "/admin", admin.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())

	guest, err := utils.NewAccessToken(secret, "guest", "CUSTOMER", 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodGet, "/admin", guest.Token).Code)

	expired, err := utils.NewAccessToken(secret, "admin", utils.RoleAdmin, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/admin", expired.Token).Code)
}

func TestLocalTokenBucket(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, nil))
	e.GET("/", ok)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/", "").Code)
	rec := serve(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))

	rec = serve(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{}, nil))
	e.Use(NewRedisCache(config.CacheConfig{Enabled: true}, nil))
	e.Use(PurgeCache(config.CacheConfig{Enabled: true}, nil, nil))
	e.POST("/", ok)

	rec := serve(e, http.MethodPost, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/movies/:id", ok)

	serve(e, http.MethodGet, "/movies/M001", "")
	serve(e, http.MethodGet, "/nowhere", "")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/movies/:id", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)
	status, gotHdr, body, okDecode := decodePayload(payload)
	require.True(t, okDecode)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, okDecode = decodePayload([]byte{1, 2})
	assert.False(t, okDecode)
}
