package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kosench/shortlink/internal/config"
	"github.com/Kosench/shortlink/internal/events"
	"github.com/Kosench/shortlink/internal/handler"
	"github.com/Kosench/shortlink/internal/repository"
	"github.com/Kosench/shortlink/internal/service"
	"github.com/Kosench/shortlink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	publisher := connectPublisher(cfg)
	defer publisher.Close()

	var sink events.Sink = events.NullSink{}
	var dispatcher *events.Dispatcher
	if cfg.Events.Enabled {
		dispatcher = events.NewDispatcher(publisher, cfg.Events.BufferSize, cfg.Events.PublishTimeout)
		dispatcher.Start(cfg.Events.Workers)
		sink = dispatcher
	}

	linkRepo := repository.NewMemoryLinkRepository(nil)
	generator := utils.NewCodeGenerator(utils.WithMaxAttempts(cfg.Generator.MaxAttempts))
	linkService := service.NewLinkService(linkRepo, generator,
		service.WithDefaultValidity(cfg.DefaultValidity()),
		service.WithEventSink(sink),
	)

	router, err := handler.NewRouter(
		handler.RouterConfig{
			AllowedOrigins: cfg.GetAllowedOrigins(),
			TrustedProxies: cfg.App.TrustedProxies,
		},
		handler.NewLinkHandler(linkService, cfg.GetBaseURL()),
		handler.NewHealthHandler(linkRepo, publisher, Version),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", cfg.GetServerAddress())
		log.Printf("API endpoints: POST /shorturls, GET /shorturls/{shortcode}")
		log.Printf("Redirect endpoint: GET /{shortcode}")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		// Сначала HTTP, потом очередь событий
		if dispatcher != nil {
			if err := dispatcher.Shutdown(shutdownCtx); err != nil {
				log.Printf("Event queue not drained: %v", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Println("Server gracefully stopped")
	return nil
}

// connectPublisher returns a Redis publisher when events are enabled and
// Redis answers, and a null publisher otherwise.
func connectPublisher(cfg *config.Config) events.Publisher {
	if !cfg.Events.Enabled {
		return events.NewNullPublisher()
	}

	publisher, err := events.NewRedisPublisher(events.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		Namespace:    cfg.Events.Namespace,
		MaxLen:       cfg.Events.MaxLen,
	})
	if err != nil {
		log.Printf("Failed to connect to Redis (running without event export): %v", err)
		return events.NewNullPublisher()
	}

	log.Println("Connected to Redis, exporting events")
	return publisher
}
