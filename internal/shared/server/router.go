package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"decision-backend/internal/bootstrap"
	"decision-backend/internal/shared/metrics"
	"decision-backend/internal/shared/server/middleware"
	"decision-backend/internal/shared/server/respond"
)

const generateRateGroup = "GENERATE"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := app.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
	)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			generateRateGroup: {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/recommendations") {
				return generateRateGroup
			}
			return ""
		},
	}))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	app.GoogleAuth.RegisterRoutes(api)
	app.UsersHandler.RegisterRoutes(api)
	app.DecisionsHandler.RegisterRoutes(api)
	app.RecommendationsHandler.RegisterRoutes(api)
	app.SettingsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
