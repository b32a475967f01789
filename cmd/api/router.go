package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"equiptrack/internal/config"
	"equiptrack/internal/middleware"
	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/modules/export"
	"equiptrack/internal/modules/maintenance"
	"equiptrack/internal/modules/realtime"
	jwtsvc "equiptrack/internal/pkg/jwt"
)

// NewRouter wires every module onto one gin engine.
func NewRouter(cfg *config.Config, store equipment.RecordStore, tokens *jwtsvc.Service, opts ...equipment.Option) *gin.Engine {
	hub := realtime.NewHub(cfg.CORSAllowedOrigins)

	opts = append([]equipment.Option{
		equipment.WithLocation(cfg.Location),
		equipment.WithPublisher(hub),
	}, opts...)
	equipmentService := equipment.NewService(store, opts...)
	equipmentHandler := equipment.NewHandler(equipmentService)

	maintenanceHandler := maintenance.NewHandler(maintenance.NewService(equipmentService))
	exportHandler := export.NewHandler(export.NewService(equipmentService))
	realtimeHandler := realtime.NewHandler(hub, equipmentService)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.OperatorAuth(tokens, cfg.RequireAuth))
	{
		equipmentHandler.RegisterRoutes(v1)
		maintenanceHandler.RegisterRoutes(v1)
		exportHandler.RegisterRoutes(v1)
		realtimeHandler.RegisterRoutes(v1)
	}

	return r
}
