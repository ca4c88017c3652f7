package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"tracker/internal/config"
	handlers "tracker/internal/http/handler"
	"tracker/internal/http/middleware"
	"tracker/internal/otel"
	"tracker/internal/service"
	"tracker/internal/store/notion"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdown, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	// Initialize the record-store client for the configured API revision
	storeClient, err := notion.NewClient(cfg.Notion)
	if err != nil {
		log.Fatalf("failed to initialize store client: %v", err)
	}

	// Initialize services
	timeline := service.NewCommentTimeline(storeClient)
	projSvc := service.NewProjectService(storeClient, timeline)
	issuerSvc := service.NewIssuerService(storeClient, cfg.SiteURL, cfg.IssueConcurrency)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, projSvc, issuerSvc, storeClient)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
