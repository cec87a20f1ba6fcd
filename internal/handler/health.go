package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Kosench/shortlink/internal/events"
	"github.com/gin-gonic/gin"
)

// streamPublisher is implemented by publishers that write to named streams.
type streamPublisher interface {
	GetKeyBuilder() *events.KeyBuilder
}

// LinkCounter reports the number of registered links.
type LinkCounter interface {
	Len() int
}

type HealthHandler struct {
	links     LinkCounter
	publisher events.Publisher
	version   string
}

// NewHealthHandler builds the health and info endpoints. A nil or null publisher is
// reported as disabled.
func NewHealthHandler(links LinkCounter, publisher events.Publisher, version string) *HealthHandler {
	return &HealthHandler{
		links:     links,
		publisher: publisher,
		version:   version,
	}
}

func (h *HealthHandler) eventsEnabled() bool {
	if h.publisher == nil {
		return false
	}
	_, null := h.publisher.(*events.NullPublisher)
	return !null
}

func (h *HealthHandler) Health(c *gin.Context) {
	response := gin.H{
		"status": "healthy",
		"links":  h.links.Len(),
		"services": gin.H{
			"registry": "healthy",
			"events":   "disabled",
		},
	}

	if h.eventsEnabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.publisher.HealthCheck(ctx); err != nil {
			response["services"].(gin.H)["events"] = "unhealthy"
			response["status"] = "degraded"
		} else {
			response["services"].(gin.H)["events"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if response["status"] == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{
		"service":        "shortlink",
		"version":        h.version,
		"storage":        "memory",
		"events_enabled": h.eventsEnabled(),
	}
	if h.eventsEnabled() {
		info["events_driver"] = "redis"
	}
	if sp, ok := h.publisher.(streamPublisher); ok && h.eventsEnabled() {
		keys := sp.GetKeyBuilder()
		info["streams"] = gin.H{
			"links":  keys.Stream(events.EventLinkCreated),
			"clicks": keys.Stream(events.EventClickRecorded),
		}
	}
	c.JSON(http.StatusOK, info)
}
