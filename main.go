package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"villa-backend/config"
	"villa-backend/controllers"
	"villa-backend/routes"
	"villa-backend/services"
)

func sessionTTL() time.Duration {
	raw := os.Getenv("SESSION_TTL_HOURS")
	if raw == "" {
		return 24 * time.Hour
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(hours) * time.Hour
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatal().Err(err).Msg("❌ Database connect failed")
	}
	db := config.DB
	if db == nil {
		log.Fatal().Msg("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Info().Msg("✅ Database connection established and migrations applied")

	uploadRoot := os.Getenv("UPLOAD_DIR")
	if uploadRoot == "" {
		uploadRoot = filepath.Join("uploads", "gallery")
	}

	// Initialize services
	media := services.NewMediaStorage(uploadRoot)
	galleryService := services.NewGalleryService(db, media)
	pricingService := services.NewPricingService(db)
	authService := services.NewAuthService(db, sessionTTL())
	fetcher := &services.HTTPRateFetcher{Client: &http.Client{Timeout: 30 * time.Second}}

	// Initialize controllers
	galleryController := controllers.NewGalleryController(galleryService, media)
	archiveController := controllers.NewArchiveController(galleryService)
	pricingController := controllers.NewPricingController(pricingService, fetcher)
	authController := controllers.NewAuthController(authService)

	// Build router
	router := routes.SetupRouter(
		galleryController,
		archiveController,
		pricingController,
		authController,
		authService,
		uploadRoot,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("🚀 Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ ListenAndServe()")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ Server forced to shutdown")
	}

	log.Info().Msg("✅ Server stopped gracefully")
}
