package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/service"
)

func signedToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "u1",
		"role":        role,
		"unique_name": "ana",
		"exp":         time.Now().Add(ttl).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := service.NewAuthService(nil, nil)
	policy := service.NewAccessPolicy()

	r := gin.New()
	r.Use(WithResponseMeta())
	protected := r.Group("/", Session(auth))
	protected.GET("/setups", Require(policy, service.ResourceSetups, service.ActionRead), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "token": backend.TokenFrom(c.Request.Context())})
	})
	protected.GET("/students/:id/overview", RequireSelfOr(policy, service.ResourceOverview, service.ActionRead), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestSessionRejectsMissingAndExpiredTokens(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/setups", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/setups", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "Admin", -time.Minute))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestSessionForwardsTokenAndChecksRole(t *testing.T) {
	r := newRouter(t)
	token := signedToken(t, "Admin", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/setups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), token)

	req = httptest.NewRequest(http.MethodGet, "/setups?access_token="+signedToken(t, "Student", time.Hour), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSelfOr(t *testing.T) {
	r := newRouter(t)
	student := signedToken(t, "Student", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/students/u1/overview", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/students/u2/overview", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	var meta map[string]interface{}
	r.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, meta)
	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
}

func TestInvalidateOnWriteOnlyAfterSuccessfulWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.Use(InvalidateOnWrite(func(context.Context) { calls++ }))
	r.GET("/classes", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/classes", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.PUT("/classes/:id", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/classes", nil))
	assert.Equal(t, 0, calls)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/classes", nil))
	assert.Equal(t, 1, calls)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/classes/1", nil))
	assert.Equal(t, 1, calls)
}
