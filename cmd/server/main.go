package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/api"
	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase/config"
)

// HTTPConfig holds the server-level knobs that are independent of where the
// collection and its images are stored.
type HTTPConfig struct {
	RequestTimeout  int `env:"REQUEST_TIMEOUT" env-default:"60"`
	ShutdownTimeout int `env:"SHUTDOWN_TIMEOUT" env-default:"10"`
}

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	var httpConfig HTTPConfig
	if err := cleanenv.ReadEnv(&httpConfig); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		slog.Error("Failed to load server configuration", "err", err)
		os.Exit(1)
	}

	if serverConfig.StoreType == "postgres" {
		if err := config.PingPostgres(serverConfig.DatabaseURL); err != nil {
			slog.Error("Failed to connect to database", "err", err)
			os.Exit(1)
		}
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	// Load the persisted collection before serving
	if err := svc.Load(context.Background()); err != nil {
		slog.Error("Failed to load collection data", "err", err)
		os.Exit(1)
	}

	images, err := serverConfig.BuildImageStore()
	if err != nil {
		slog.Error("Failed to build image store", "err", err)
		os.Exit(1)
	}

	showcaseHandler := api.NewShowcaseHandler(svc)
	imagesHandler := api.NewImagesHandler(images)

	// Set up router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(time.Duration(httpConfig.RequestTimeout) * time.Second))

	// Mount routes
	r.Mount("/showcase", showcaseHandler.Routes())
	r.Mount("/items", showcaseHandler.ItemRoutes())
	r.Mount("/images", imagesHandler.Routes())

	// Serve stored image files directly when they live on the local disk
	if serverConfig.ImageStoreType == "fs" {
		prefix := "/" + strings.Trim(serverConfig.ImageURLPrefix, "/")
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(serverConfig.ImageDir)))
		r.Get(prefix+"/*", fileServer.ServeHTTP)
	}

	// Add a simple health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Create server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Showcase server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"store", serverConfig.StoreType,
			"images", serverConfig.ImageStoreType)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(httpConfig.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
