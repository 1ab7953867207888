package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trilhasedu/interest-engine/internal/monitoring"
	"github.com/trilhasedu/interest-engine/internal/ratelimit"
	"github.com/trilhasedu/interest-engine/internal/security"
)

// RouterConfig holds the HTTP-surface tunables.
type RouterConfig struct {
	AllowedOrigins []string
	RateRPS        float64
	RateBurst      int
}

// DefaultRouterConfig returns permissive development defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		AllowedOrigins: []string{"*"},
		RateRPS:        5,
		RateBurst:      10,
	}
}

// NewRouter assembles the gin engine with middleware and routes.
func NewRouter(h *Handler, cfg RouterConfig, logger *monitoring.Logger, metrics *monitoring.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger, metrics))
	r.Use(security.HeadersMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	limiter := ratelimit.NewIPLimiter(cfg.RateRPS, cfg.RateBurst)

	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)

	v1 := r.Group("/api/v1/mapping", limiter.Middleware())
	{
		v1.GET("/questions", h.Questions)
		v1.POST("/submit", h.Submit)
		v1.GET("/history", h.History)
	}

	return r
}

func requestLogger(logger *monitoring.Logger, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncrementRequest()

		c.Next()

		status := c.Writer.Status()
		metrics.RecordStatus(status)
		logger.RequestLogger(c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, time.Since(start))
	}
}
