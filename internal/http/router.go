package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaint-service/internal/http/middleware"
	"complaint-service/internal/metrics"
)

// HealthCheck reports whether the configured medium is reachable.
type HealthCheck func(ctx context.Context) error

type RouterDeps struct {
	Handler        *Handler
	AuthMiddleware gin.HandlerFunc
	Metrics        *metrics.Recorder
	Health         HealthCheck
	Log            zerolog.Logger
	Environment    string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Log, deps.Metrics))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	handler := deps.Handler

	citizen := router.Group("/api/v1")
	{
		citizen.POST("/complaints", handler.createComplaint)
		citizen.GET("/complaints/:id", handler.getComplaint)
		citizen.POST("/complaints/:id/appeal", handler.raiseAppeal)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(deps.AuthMiddleware)
	{
		admin.GET("/complaints", handler.listComplaints)
		admin.GET("/complaints/summary", handler.complaintSummary)
		admin.PUT("/complaints/:id/status", handler.updateStatus)
		admin.POST("/complaints/:id/escalate", handler.escalate)
	}

	return router
}
