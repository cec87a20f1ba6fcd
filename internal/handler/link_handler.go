package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/Kosench/shortlink/internal/errors"
	"github.com/Kosench/shortlink/internal/model"
	"github.com/gin-gonic/gin"
)

// LinkService is the set of operations the HTTP layer needs.
type LinkService interface {
	CreateShortURL(ctx context.Context, req *model.CreateShortURLRequest, baseURL string) (*model.CreatedLink, error)
	GetStats(ctx context.Context, shortCode string) (*model.LinkStats, error)
	Redirect(ctx context.Context, shortCode string, rc model.RequestContext) (string, error)
}

type LinkHandler struct {
	linkService LinkService
	baseURL     string
}

// NewLinkHandler creates a handler. An empty baseURL means short links are
// built from the scheme and host of each request.
func NewLinkHandler(linkService LinkService, baseURL string) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

func (h *LinkHandler) CreateShortURL(c *gin.Context) {
	var req model.CreateShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format",
		})
		return
	}
	c.Set(requestBodyKey, &req)

	created, err := h.linkService.CreateShortURL(c.Request.Context(), &req, h.resolveBaseURL(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LinkHandler) GetStats(c *gin.Context) {
	stats, err := h.linkService.GetStats(c.Request.Context(), c.Param("shortcode"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *LinkHandler) Redirect(c *gin.Context) {
	rc := model.RequestContext{
		Referrer: c.GetHeader("Referer"),
		IP:       c.ClientIP(),
	}

	target, err := h.linkService.Redirect(c.Request.Context(), c.Param("shortcode"), rc)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, target)
}

func (h *LinkHandler) resolveBaseURL(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	// X-Forwarded-Proto не читаем: за прокси задавайте app.base_url
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// handleError обрабатывает ошибки и возвращает соответствующие HTTP коды
func (h *LinkHandler) handleError(c *gin.Context, err error) {
	if apperrors.IsValidationError(err) {
		validationErr := apperrors.GetValidationError(err)
		kind := "validation_error"
		switch {
		case errors.Is(err, apperrors.ErrInvalidURL):
			kind = "invalid_url"
		case errors.Is(err, apperrors.ErrInvalidShortCode):
			kind = "invalid_shortcode"
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   kind,
			"message": validationErr.Message,
			"field":   validationErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "duplicate_code",
			"message": "Shortcode already exists",
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Shortcode not found",
		})
	case errors.Is(err, apperrors.ErrExpired):
		c.JSON(http.StatusGone, gin.H{
			"error":   "expired",
			"message": "Link has expired",
		})
	default:
		// Детали только в лог
		log.Printf("request %s: internal error: %v", RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Internal Server Error",
		})
	}
}
