package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/livescore/config"
	"github.com/DhavalSuthar-24/livescore/internal/match"
	mw "github.com/DhavalSuthar-24/livescore/internal/middleware"
	"github.com/DhavalSuthar-24/livescore/internal/realtime"
)

// Dependencies are the wired components the HTTP surface is built from.
type Dependencies struct {
	Config   *config.Config
	Matches  *match.Service
	Hub      *realtime.Hub
	Registry *prometheus.Registry
}

func SetupRoutes(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.App.FrontendURL}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "If-Match")
	corsCfg.ExposeHeaders = []string{"ETag"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.App.Store})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	if err := match.MatchRoutes(api, deps.Matches, cfg.JWT.AccessTokenSecret); err != nil {
		return nil, fmt.Errorf("match routes: %w", err)
	}

	heartbeat := time.Duration(cfg.Realtime.HeartbeatSeconds) * time.Second
	api.GET("/stream", mw.AuthMiddleware(cfg.JWT.AccessTokenSecret), realtime.StreamHandler(deps.Hub, heartbeat))

	return r, nil
}
