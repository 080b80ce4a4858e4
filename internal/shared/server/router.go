package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

const analyzeRateLimitGroup = "ANALYZE"

// Deps are the collaborators the router exposes over HTTP.
type Deps struct {
	Config    config.Config
	Analyses  *analyses.Handler
	AIEnabled bool
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "aiEnabled": deps.AIEnabled})
	})

	authed := api.Group("")
	authed.Use(middleware.Identity())
	registerMeRoutes(authed)

	if deps.Analyses != nil {
		deps.Analyses.RegisterReadRoutes(authed)

		limited := authed.Group("")
		limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				analyzeRateLimitGroup: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			},
			DefaultGroup: analyzeRateLimitGroup,
		}))
		deps.Analyses.RegisterAnalyzeRoute(limited)
	}

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
