package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/http/response"
	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/progress"
	"github.com/torkelwestby/christmas-rebus/internal/rebus"
)

type ProgressHandler struct {
	log   *logger.Logger
	store *progress.Store
}

func NewProgressHandler(log *logger.Logger, store *progress.Store) *ProgressHandler {
	return &ProgressHandler{log: log.With("handler", "progress"), store: store}
}

// GetProgress degrades to an empty list when the record store is
// unreachable; the game keeps working, just without saved state.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	slots, err := h.store.Get(c.Request.Context())
	if err != nil {
		h.log.Error("failed to fetch progress", "error", err)
		response.RespondOK(c, gin.H{"rebuses": []progress.Slot{}})
		return
	}
	response.RespondOK(c, gin.H{"rebuses": slots})
}

func (h *ProgressHandler) SetProgress(c *gin.Context) {
	var req struct {
		RebusID       int    `json:"rebusId"`
		Solved        bool   `json:"solved"`
		ScheduledDate string `json:"scheduledDate"`
		ScheduledTime string `json:"scheduledTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.RebusID < 1 || req.RebusID > rebus.SlotCount {
		response.RespondError(c, http.StatusBadRequest, "invalid_rebus_id", errors.New("rebusId must be between 1 and 5"))
		return
	}

	if err := h.store.Set(c.Request.Context(), req.RebusID, req.Solved, req.ScheduledDate, req.ScheduledTime); err != nil {
		h.log.Error("failed to save progress", "rebus_id", req.RebusID, "error", err)
		status := http.StatusInternalServerError
		if upstream := airtable.StatusOf(err); upstream == http.StatusTooManyRequests || upstream >= 500 {
			status = http.StatusServiceUnavailable
		}
		response.RespondError(c, status, "progress_save_failed", errors.New("kunne ikke lagre fremgang"))
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
