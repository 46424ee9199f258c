package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/YelnurShh/infoqaz/api"
	"github.com/YelnurShh/infoqaz/config"
	"github.com/YelnurShh/infoqaz/groq"
	"github.com/YelnurShh/infoqaz/policy"
	"github.com/YelnurShh/infoqaz/relay"
	"github.com/YelnurShh/infoqaz/store"
	"github.com/YelnurShh/infoqaz/translate"
	"github.com/YelnurShh/infoqaz/wiki"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting infoqaz server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Groq URL: %s", cfg.GroqAPIURL)
	log.Printf("Groq Model: %s", cfg.GroqModel)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize upstream clients
	translator := translate.NewClient(cfg.GoogleTranslateURL, cfg.GoogleAPIKey, cfg.UpstreamTimeout)
	chatClient := groq.NewClient(cfg.GroqAPIURL, cfg.GroqAPIKey, cfg.UpstreamTimeout)
	wikiClient := wiki.NewClient(cfg.WikiBaseURL, cfg.UpstreamTimeout)

	// Initialize prompt policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize handlers
	h := api.NewHandler(db, cfg)
	relayH := relay.NewHandler(cfg, translator, chatClient, policyEngine)
	wikiH := wiki.NewHandler(wikiClient)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)
	relayH.RegisterRoutes(e)
	wikiH.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down infoqaz server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Server stopped")
}
