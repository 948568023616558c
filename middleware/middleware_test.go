package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"consultorio/models"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zap.NewNop())
}

type revocations map[string]bool

func (r revocations) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "broken" {
		return false, errors.New("redis down")
	}
	return r[jti], nil
}

func newRouter(revoked revocations, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(revoked)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(CtxUserID), "role": c.GetString(CtxRole)})
	})
	r.GET("/private", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	token, claims, err := utils.GenerateToken("u1", string(models.RolePatient), time.Hour)
	require.NoError(t, err)

	r := newRouter(revocations{})
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	w := get(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1","role":"patient"}`, w.Body.String())

	revoked := newRouter(revocations{claims.Id: true})
	assert.Equal(t, http.StatusUnauthorized, get(revoked, token).Code)

	expired, _, err := utils.GenerateToken("u1", "patient", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, expired).Code)
}

func TestAdminOnly(t *testing.T) {
	patient, _, err := utils.GenerateToken("u1", string(models.RolePatient), time.Hour)
	require.NoError(t, err)
	admin, _, err := utils.GenerateToken("a1", string(models.RoleAdmin), time.Hour)
	require.NoError(t, err)

	r := newRouter(revocations{}, AdminOnly())
	assert.Equal(t, http.StatusForbidden, get(r, patient).Code)
	assert.Equal(t, http.StatusOK, get(r, admin).Code)

	both := newRouter(revocations{}, RequireRole(models.RoleAdmin, models.RolePatient))
	assert.Equal(t, http.StatusOK, get(both, patient).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(3))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, hit("203.0.113.7"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit("203.0.113.7"))
	assert.Equal(t, http.StatusNoContent, hit("198.51.100.2"))
}

func TestRateLimiterSweep(t *testing.T) {
	s := newRateLimiterStore(10)
	now := time.Now()
	s.getLimiter("a", now.Add(-time.Hour))
	s.getLimiter("b", now)
	s.sweep(now, 10*time.Minute)
	assert.NotContains(t, s.limiters, "a")
	assert.Contains(t, s.limiters, "b")
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		headers map[string]string
		want    string
	}{
		{map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "1.2.3.4"},
		{map[string]string{"X-Real-IP": " 9.9.9.9 "}, "9.9.9.9"},
		{nil, "192.0.2.1"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range tc.headers {
			c.Request.Header.Set(k, v)
		}
		assert.Equal(t, tc.want, getClientIP(c))
	}
}
