package main

import (
	"net/http"

	"github.com/gestimo/gestimo/internal/apiserver/handler"
	"github.com/gestimo/gestimo/internal/apiserver/middleware"
	"github.com/gestimo/gestimo/internal/auth/jwt"
	"github.com/gestimo/gestimo/internal/common/config"
	"github.com/gestimo/gestimo/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the full route table. Reads are open to any authenticated
// user, mutations require the manager role, user and audit administration
// require admin.
func NewRouter(cfg *config.APIServerConfig, h *handler.Handler, jwtService *jwt.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			ExposeHeaders:    cfg.CORS.ExposeHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
		}))
	}

	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics)
		router.Use(m.Middleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/auth/login", h.Login)

	api := router.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtService))
	manage := middleware.RequireManager()
	admin := middleware.RequireAdmin()

	api.POST("/auth/change-password", h.ChangePassword)

	api.GET("/users", admin, h.ListUsers)
	api.POST("/users", admin, h.CreateUser)
	api.PUT("/users/:id", admin, h.UpdateUser)
	api.DELETE("/users/:id", admin, h.DeleteUser)

	api.GET("/properties", h.ListProperties)
	api.GET("/properties/:id", h.GetProperty)
	api.POST("/properties", manage, h.CreateProperty)
	api.PUT("/properties/:id", manage, h.UpdateProperty)
	api.DELETE("/properties/:id", manage, h.DeleteProperty)

	api.GET("/units", h.ListUnits)
	api.GET("/units/:id", h.GetUnit)
	api.POST("/units", manage, h.CreateUnit)
	api.PUT("/units/:id", manage, h.UpdateUnit)
	api.DELETE("/units/:id", manage, h.DeleteUnit)

	api.GET("/tenants", h.ListTenants)
	api.GET("/tenants/:id", h.GetTenant)
	api.POST("/tenants", manage, h.CreateTenant)
	api.PUT("/tenants/:id", manage, h.UpdateTenant)
	api.DELETE("/tenants/:id", manage, h.DeleteTenant)

	api.GET("/leases", h.ListLeases)
	api.GET("/leases/:id", h.GetLease)
	api.POST("/leases", manage, h.CreateLease)
	api.PUT("/leases/:id", manage, h.UpdateLease)
	api.POST("/leases/:id/terminate", manage, h.TerminateLease)

	api.GET("/payments", h.ListPayments)
	api.GET("/payments/:id", h.GetPayment)
	api.POST("/payments", manage, h.CreatePayment)
	api.PUT("/payments/:id", manage, h.UpdatePayment)
	api.DELETE("/payments/:id", manage, h.DeletePayment)

	api.GET("/payment-modes", h.ListPaymentModes)
	api.POST("/payment-modes", manage, h.CreatePaymentMode)
	api.PUT("/payment-modes/:id", manage, h.UpdatePaymentMode)
	api.DELETE("/payment-modes/:id", manage, h.DeletePaymentMode)

	api.GET("/documents", h.ListDocuments)
	api.GET("/documents/:id/download", h.DownloadDocument)
	api.POST("/documents", manage, h.UploadDocument)
	api.DELETE("/documents/:id", manage, h.DeleteDocument)

	api.GET("/dashboard/stats", h.GetDashboardStats)
	api.GET("/dashboard/revenue", h.GetRevenue)
	api.GET("/dashboard/occupancy", h.GetOccupancy)

	api.GET("/audit-logs", admin, h.ListAuditLogs)

	return router
}
