package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MorningZephyr/zhen-bot/internal/bot_service/service"
	"github.com/MorningZephyr/zhen-bot/internal/models"
	"github.com/MorningZephyr/zhen-bot/pkg/logger"
)

// HealthCheckFunc probes one backing component.
type HealthCheckFunc func(ctx context.Context) error

// Handler holds the HTTP endpoint implementations for the bot service.
type Handler struct {
	service     *service.Service
	serviceName string
	health      map[string]HealthCheckFunc
}

// NewHandler creates a Handler. health maps component names to their probes;
// it may be empty when no backing service is configured.
func NewHandler(s *service.Service, serviceName string, health map[string]HealthCheckFunc) *Handler {
	return &Handler{service: s, serviceName: serviceName, health: health}
}

func (h *Handler) requestLogger(c *gin.Context) *logger.Logger {
	return logger.New(h.serviceName, c.GetString(traceIDKey), c.GetString(callerIDKey))
}

func callerContext(c *gin.Context) models.CallerContext {
	return models.CallerContext{
		CallerID: c.GetString(callerIDKey),
		OwnerID:  c.Param("owner"),
	}
}

// httpStatusFor maps an engine status to an HTTP status code. Outcomes like
// not_factual or validation_failed are normal results, not transport errors.
func httpStatusFor(status models.Status) int {
	switch status {
	case models.StatusUnauthorized:
		return http.StatusForbidden
	case models.StatusError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// LearnRequest is the body of POST /profiles/:owner/facts.
type LearnRequest struct {
	Statement string `json:"statement" binding:"required"`
}

// Learn handles POST /api/v1/profiles/:owner/facts.
func (h *Handler) Learn(c *gin.Context) {
	var req LearnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := callerContext(c)
	log := h.requestLogger(c)

	result := h.service.Learn(c.Request.Context(), caller, req.Statement)
	log.WithPayload(map[string]interface{}{
		"owner_id": caller.OwnerID,
		"status":   result.Status,
	}).Info("learn request handled")

	c.JSON(httpStatusFor(result.Status), result)
}

// ListFacts handles GET /api/v1/profiles/:owner/facts.
func (h *Handler) ListFacts(c *gin.Context) {
	ownerID := c.Param("owner")
	summary := h.service.ListFacts(c.Request.Context(), ownerID)
	c.JSON(httpStatusFor(summary.Status), summary)
}

// SearchFacts handles GET /api/v1/profiles/:owner/facts/search?q=...
func (h *Handler) SearchFacts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter 'q'"})
		return
	}

	ownerID := c.Param("owner")
	result := h.service.SearchFacts(c.Request.Context(), ownerID, query)
	c.JSON(httpStatusFor(result.Status), result)
}

// AskRequest is the body of POST /profiles/:owner/ask.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask handles POST /api/v1/profiles/:owner/ask. Anyone authenticated may ask;
// the answer speaks in the owner's voice.
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := callerContext(c)
	answer, err := h.service.Ask(c.Request.Context(), caller, req.Question)
	if err != nil {
		if service.IsUserError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.requestLogger(c).WithError(models.ErrorInfo{Message: err.Error(), Type: "ask_error"}).
			Error("ask request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner_id": caller.OwnerID,
		"question": req.Question,
		"answer":   answer,
	})
}

// Healthz handles GET /healthz. It probes every configured backing component
// and reports 503 when any of them is down.
func (h *Handler) Healthz(c *gin.Context) {
	components := make(map[string]string, len(h.health))
	healthy := true
	for name, check := range h.health {
		if err := check(c.Request.Context()); err != nil {
			components[name] = err.Error()
			healthy = false
		} else {
			components[name] = "ok"
		}
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}
