package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/analyze"
	"github.com/torkelwestby/christmas-rebus/internal/http/response"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/platform/openai"
	"github.com/torkelwestby/christmas-rebus/internal/ratelimit"
)

type AnalyzeHandler struct {
	log     *logger.Logger
	svc     *analyze.Service
	limiter *ratelimit.Limiter
}

func NewAnalyzeHandler(log *logger.Logger, svc *analyze.Service, limiter *ratelimit.Limiter) *AnalyzeHandler {
	return &AnalyzeHandler{log: log.With("handler", "analyze"), svc: svc, limiter: limiter}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if !h.svc.Enabled {
		response.RespondError(c, http.StatusServiceUnavailable, "ai_disabled", errors.New("AI er skrudd av i dette miljøet"))
		return
	}
	if h.limiter != nil {
		if ok, _ := h.limiter.Allow(c.ClientIP()); !ok {
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errors.New("For mange forespørsler. Prøv igjen om litt."))
			return
		}
	}

	var input analyze.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	analysis, err := h.svc.Analyze(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, analyze.ErrNothingToAnalyze):
			response.RespondError(c, http.StatusBadRequest, "nothing_to_analyze", errors.New("Legg ved beskrivelse eller bilde"))
		case openai.IsQuotaError(err):
			h.log.Warn("analysis quota exceeded", "error", err)
			response.RespondError(c, http.StatusTooManyRequests, "quota_exceeded", errors.New("Litt mange forespørsler akkurat nå. Prøv igjen straks."))
		default:
			h.log.Error("analysis failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "analysis_failed", errors.New("AI-analyse feilet"))
		}
		return
	}

	response.RespondOK(c, gin.H{
		"success":  true,
		"analysis": analysis,
	})
}
