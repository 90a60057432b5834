package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/digimonapk/dicords/config"
	"github.com/digimonapk/dicords/handler"
	"github.com/digimonapk/dicords/middleware"
	"github.com/digimonapk/dicords/pkg/logger"
	"github.com/digimonapk/dicords/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	if cfg.Discord.Token == "" {
		slog.Error("DISCORD_TOKEN is not set")
		os.Exit(1)
	}

	// Initialize the store, the engine, and the bot
	store := service.NewDocumentStore()
	engine := service.NewEngine(store)

	bot, err := service.NewDiscordService(&cfg.Discord, engine)
	if err != nil {
		slog.Error("failed to initialize discord service", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(store, bot)
	authHandler := handler.NewAuthHandler(cfg)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/create", documentHandler.Create)
		api.GET("/document/:docId", documentHandler.Get)
		api.GET("/documents", documentHandler.List)
		api.GET("/status", documentHandler.Status)
	}

	// The channel diagnostic leaks guild topology, so it sits behind
	// login when operators are configured
	if cfg.AuthEnabled() {
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(&cfg.Auth))
		{
			protected.GET("/auth/me", authHandler.GetCurrentUser)
			protected.GET("/channels", documentHandler.Channels)
		}
	} else {
		api.GET("/channels", documentHandler.Channels)
	}

	// Connect the bot before accepting traffic
	if err := bot.Open(); err != nil {
		slog.Error("failed to connect discord bot", "error", err)
		os.Exit(1)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
		return bot.Close()
	})

	if err := g.Wait(); err != nil {
		slog.Error("exited with error", "error", err)
		os.Exit(1)
	}

	slog.Info("exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
