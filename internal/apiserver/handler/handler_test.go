package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/apiserver/middleware"
	"github.com/gestimo/gestimo/internal/apiserver/storage"
	"github.com/gestimo/gestimo/internal/auth/jwt"
	"github.com/gestimo/gestimo/internal/common/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db     database.Database
	store  *storage.DiskStore
	router *gin.Engine
	admin  string // bearer token
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	store, err := storage.NewDiskStore(&config.StorageConfig{Path: t.TempDir()})
	require.NoError(t, err)

	env := buildEnv(t, db, store)
	return env
}

// buildEnv wires the route table the way the server binary does, on top of
// whatever Database implementation the test supplies
func buildEnv(t *testing.T, db database.Database, store *storage.DiskStore) *testEnv {
	t.Helper()

	jwtService, err := jwt.NewService(jwt.Config{SecretKey: "test-secret", Duration: time.Hour})
	require.NoError(t, err)

	cfg := &config.APIServerConfig{
		Storage: config.StorageConfig{MaxFileSize: 1 << 20},
	}
	h := NewHandler(db, jwtService, store, cfg, zap.NewNop())

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := &database.User{Name: "Admin", Email: "admin@test.local", Password: string(hashed), Role: database.RoleAdmin, IsActive: true}
	require.NoError(t, db.CreateUser(context.Background(), admin))

	router := gin.New()
	router.POST("/api/auth/login", h.Login)

	api := router.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtService))
	manage := middleware.RequireManager()
	adminOnly := middleware.RequireAdmin()

	api.POST("/users", adminOnly, h.CreateUser)
	api.GET("/users", adminOnly, h.ListUsers)

	api.POST("/properties", manage, h.CreateProperty)
	api.GET("/properties", h.ListProperties)
	api.POST("/units", manage, h.CreateUnit)
	api.GET("/units/:id", h.GetUnit)
	api.PUT("/units/:id", manage, h.UpdateUnit)
	api.POST("/tenants", manage, h.CreateTenant)
	api.DELETE("/tenants/:id", manage, h.DeleteTenant)

	api.GET("/leases", h.ListLeases)
	api.GET("/leases/:id", h.GetLease)
	api.POST("/leases", manage, h.CreateLease)
	api.PUT("/leases/:id", manage, h.UpdateLease)
	api.POST("/leases/:id/terminate", manage, h.TerminateLease)

	api.POST("/payments", manage, h.CreatePayment)
	api.POST("/payment-modes", manage, h.CreatePaymentMode)

	api.POST("/documents", manage, h.UploadDocument)
	api.GET("/documents", h.ListDocuments)
	api.GET("/documents/:id/download", h.DownloadDocument)
	api.DELETE("/documents/:id", manage, h.DeleteDocument)

	api.GET("/dashboard/stats", h.GetDashboardStats)
	api.GET("/dashboard/revenue", h.GetRevenue)
	api.GET("/dashboard/occupancy", h.GetOccupancy)

	api.GET("/audit-logs", adminOnly, h.ListAuditLogs)

	env := &testEnv{db: db, store: store, router: router}
	env.admin = env.login(t, "admin@test.local", "admin-password")
	return env
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// seedLeaseFixture creates a property, a unit and a tenant over the API and
// returns their ids
func (e *testEnv) seedLeaseFixture(t *testing.T) (propertyID, unitID, tenantID uint) {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/api/properties", e.admin, gin.H{"name": "Riverside Plaza", "location": "Douala"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	property := decodeBody[database.Property](t, w)

	w = e.doJSON(t, http.MethodPost, "/api/units", e.admin, gin.H{"property_id": property.ID, "reference": fmt.Sprintf("U-%d", property.ID)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	unit := decodeBody[database.Unit](t, w)

	w = e.doJSON(t, http.MethodPost, "/api/tenants", e.admin, gin.H{"name": "Jean Mbarga", "type": "INDIVIDUAL"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tenant := decodeBody[database.Tenant](t, w)

	return property.ID, unit.ID, tenant.ID
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/properties", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestManagerCannotAdministerUsers(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/users", env.admin, gin.H{
		"name": "Manager", "email": "manager@test.local", "password": "manager-password", "role": "manager",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	managerToken := env.login(t, "manager@test.local", "manager-password")

	w = env.doJSON(t, http.MethodGet, "/api/users", managerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/audit-logs", managerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// managers still hold full resource access
	w = env.doJSON(t, http.MethodPost, "/api/properties", managerToken, gin.H{"name": "Annex"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@test.local", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@test.local", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuditTrailRecordsMutations(t *testing.T) {
	env := newTestEnv(t)
	env.seedLeaseFixture(t)

	w := env.doJSON(t, http.MethodGet, "/api/audit-logs", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeBody[[]map[string]any](t, w)
	require.NotEmpty(t, entries)
	// newest first: the tenant create is the latest fixture mutation
	require.Equal(t, "CREATE", entries[0]["action"])
	require.Equal(t, "TENANTS", entries[0]["entity_type"])
	require.Equal(t, "Admin", entries[0]["user_name"])
}
