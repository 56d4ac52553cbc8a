package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestimo/gestimo/internal/auth/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(t *testing.T, role string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := jwt.NewService(jwt.Config{SecretKey: "test-secret", Duration: time.Hour})
	assert.NoError(t, err)
	token, err := svc.GenerateToken(1, "user@example.com", role)
	assert.NoError(t, err)

	r := gin.New()
	r.Use(JWTAuthMiddleware(svc))
	r.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/manager", RequireManager(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, token
}

func do(r *gin.Engine, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	r, token := newRouter(t, "manager")

	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", ""))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "garbage"))
	assert.Equal(t, http.StatusOK, do(r, "/any", token))
}

func TestRoleMiddleware(t *testing.T) {
	r, managerToken := newRouter(t, "manager")
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", managerToken))
	assert.Equal(t, http.StatusOK, do(r, "/manager", managerToken))

	r2, adminToken := newRouter(t, "admin")
	assert.Equal(t, http.StatusOK, do(r2, "/admin", adminToken))
	assert.Equal(t, http.StatusOK, do(r2, "/manager", adminToken))
}
