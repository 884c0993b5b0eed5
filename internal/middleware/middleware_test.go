package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberhub/internal/authz"
)

type stubParser struct {
	claims *authz.Claims
}

func (s stubParser) ParseAccessToken(token string) (*authz.Claims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"role": p.Role})
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	parser := stubParser{claims: &authz.Claims{Principal: authz.Principal{ID: 1, Role: authz.RoleAdmin}}}
	r := newRouter(AuthMiddleware(parser))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Basic good").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer bad").Code)

	w := do(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"admin"}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	parser := stubParser{claims: &authz.Claims{Principal: authz.Principal{ID: 1, Role: authz.RoleMember}}}

	r := newRouter(AuthMiddleware(parser), RequireRoles(authz.RoleSuperadmin))
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer good").Code)

	r = newRouter(AuthMiddleware(parser), RequireRoles(authz.RoleMember, authz.RoleAdmin))
	assert.Equal(t, http.StatusOK, do(r, "Bearer good").Code)

	r = newRouter(RequireRoles(authz.RoleMember))
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}

func TestRequestLogger_SetsID(t *testing.T) {
	r := newRouter(RequestLogger())

	w := do(r, "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 26)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter(RateLimitByIP(RateLimitConfig{Requests: 2, Window: time.Hour}))

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	w := do(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
