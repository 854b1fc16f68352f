package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/torkelwestby/christmas-rebus/internal/http/handlers"
	httpMW "github.com/torkelwestby/christmas-rebus/internal/http/middleware"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/ratelimit"
)

type RouterConfig struct {
	Log *logger.Logger

	RebusHandler    *httpH.RebusHandler
	ProgressHandler *httpH.ProgressHandler
	IdeaHandler     *httpH.IdeaHandler
	AnalyzeHandler  *httpH.AnalyzeHandler
	AuthHandler     *httpH.AuthHandler
	HealthHandler   *httpH.HealthHandler

	// SubmitLimiter guards idea creation; the analyze endpoint carries its
	// own hourly limiter inside its handler.
	SubmitLimiter *ratelimit.Limiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		// Rebus game
		if cfg.RebusHandler != nil {
			api.POST("/check-rebus", cfg.RebusHandler.CheckRebus)
		}
		if cfg.ProgressHandler != nil {
			api.GET("/progress", cfg.ProgressHandler.GetProgress)
			api.POST("/progress", cfg.ProgressHandler.SetProgress)
		}

		// Idea bank
		if cfg.IdeaHandler != nil {
			api.GET("/ideas", cfg.IdeaHandler.ListIdeas)
			api.POST("/ideas",
				httpMW.RateLimit(cfg.SubmitLimiter, "For mange forespørsler. Vennligst vent litt."),
				cfg.IdeaHandler.CreateIdea)
			api.PATCH("/ideas", cfg.IdeaHandler.UpdateIdea)
			api.DELETE("/ideas", cfg.IdeaHandler.DeleteIdea)
		}

		// AI-assisted field generation
		if cfg.AnalyzeHandler != nil {
			api.POST("/ai-analyze", cfg.AnalyzeHandler.Analyze)
		}
	}

	return r
}
