package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/torkelwestby/christmas-rebus/internal/http/response"
	"github.com/torkelwestby/christmas-rebus/internal/ideas"
	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

type IdeaHandler struct {
	log *logger.Logger
	svc *ideas.Service
}

func NewIdeaHandler(log *logger.Logger, svc *ideas.Service) *IdeaHandler {
	return &IdeaHandler{log: log.With("handler", "ideas"), svc: svc}
}

// noCache marks idea responses as never cacheable; the kanban board must
// always see fresh data.
func noCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	noCache(c)

	max := 100
	if raw := c.Query("max"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			max = parsed
		}
	}

	result, err := h.svc.List(c.Request.Context(), max, c.Query("offset"))
	if err != nil {
		h.log.Error("failed to list ideas", "error", err)
		status := http.StatusInternalServerError
		if upstream := airtable.StatusOf(err); upstream >= 500 || upstream == http.StatusTooManyRequests {
			status = http.StatusServiceUnavailable
		}
		response.RespondError(c, status, "list_failed", errors.New("kunne ikke hente ideer fra database"))
		return
	}
	response.RespondOK(c, result)
}

func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	var input ideas.IdeaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	record, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		h.respondIdeaError(c, err, "kunne ikke lagre idé")
		return
	}
	response.RespondCreated(c, record)
}

func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	recordID := c.Query("id")
	if recordID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_id", errors.New("record ID mangler"))
		return
	}

	var input ideas.IdeaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	record, err := h.svc.Update(c.Request.Context(), recordID, input)
	if err != nil {
		h.respondIdeaError(c, err, "kunne ikke oppdatere idé")
		return
	}
	response.RespondOK(c, record)
}

func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	recordID := c.Query("id")
	if recordID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_id", errors.New("record ID mangler"))
		return
	}
	archive := c.Query("archive") == "true"

	if err := h.svc.Delete(c.Request.Context(), recordID, archive); err != nil {
		h.respondIdeaError(c, err, "kunne ikke slette idé")
		return
	}
	if archive {
		response.RespondOK(c, gin.H{"success": true, "archived": true})
		return
	}
	response.RespondOK(c, gin.H{"success": true, "deleted": true})
}

// respondIdeaError maps service failures to user-facing statuses: validation
// gets field detail, store failures get translated by retryability.
func (h *IdeaHandler) respondIdeaError(c *gin.Context, err error, fallback string) {
	var verr *ideas.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  response.APIError{Message: "Ugyldig data sendt inn", Code: "invalid_input"},
			"issues": verr.Issues,
		})
		return
	}

	h.log.Error("idea request failed", "error", err)
	status := http.StatusInternalServerError
	switch upstream := airtable.StatusOf(err); {
	case upstream == http.StatusUnprocessableEntity:
		status = http.StatusBadRequest
	case upstream == http.StatusTooManyRequests:
		status = http.StatusServiceUnavailable
	case upstream >= 500:
		status = http.StatusServiceUnavailable
	}
	response.RespondError(c, status, "store_failed", errors.New(fallback))
}
