package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/http/response"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/rebus"
)

type RebusHandler struct {
	log      *logger.Logger
	composer *rebus.Composer
}

func NewRebusHandler(log *logger.Logger, composer *rebus.Composer) *RebusHandler {
	return &RebusHandler{log: log.With("handler", "rebus"), composer: composer}
}

func (h *RebusHandler) CheckRebus(c *gin.Context) {
	var req struct {
		RebusID    int    `json:"rebusId"`
		UserAnswer string `json:"userAnswer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.RebusID == 0 || req.UserAnswer == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("missing rebusId or userAnswer"))
		return
	}

	puzzle, ok := rebus.Find(req.RebusID)
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_rebus_id", errors.New("invalid rebusId"))
		return
	}

	eval := rebus.Evaluate(puzzle, req.UserAnswer)
	message := h.composer.Compose(c.Request.Context(), puzzle, eval, req.UserAnswer)

	if eval.Solved {
		response.RespondOK(c, gin.H{
			"correct": true,
			"message": message,
		})
		return
	}
	response.RespondOK(c, gin.H{
		"correct": false,
		"message": message,
		"progress": gin.H{
			"found": eval.Found,
			"total": eval.Total,
		},
	})
}
