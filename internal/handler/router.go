package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigins []string
	TrustedProxies []string
	Logger         *log.Logger
}

// NewRouter wires middleware and routes onto a fresh gin engine.
func NewRouter(cfg RouterConfig, links *LinkHandler, health *HealthHandler) (*gin.Engine, error) {
	router := gin.New()

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// "-" is not a shortcode character, so these never shadow a link
	ops := router.Group("/-")
	ops.GET("/health", health.Health)
	ops.GET("/info", health.Info)

	router.POST("/shorturls", links.CreateShortURL)
	router.GET("/shorturls/:shortcode", links.GetStats)

	router.GET("/:shortcode", links.Redirect)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Not Found",
		})
	})

	return router, nil
}
