package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"wastevision/internal/annotate"
	"wastevision/internal/config"
	"wastevision/internal/detector"
	handlers "wastevision/internal/http/handler"
	"wastevision/internal/http/middleware"
	"wastevision/internal/logger"
	wotel "wastevision/internal/otel"
	"wastevision/internal/service"
	"wastevision/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title WasteVision API
// @version 1.0
// @description Identifies waste items in photos and classifies them by disposal category.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.Location(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := wotel.Init(ctx, log)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Object storage is only needed to fetch model artifacts missing on disk
	var store storage.Storage
	if cfg.MinIO.Enabled() {
		store, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	}

	table, db, err := loadLabels(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to load labels: %v", err)
	}
	log.WithFields(logrus.Fields{
		"event":  "labels_loaded",
		"source": cfg.LabelsSource,
		"labels": table.Len(),
	}).Info("classification table ready")

	customDet, err := detector.New(ctx, service.ModelCustom, cfg.Detector, cfg.Detector.Custom, store, log)
	if err != nil {
		log.Fatalf("failed to load custom model: %v", err)
	}
	defaultDet, err := detector.New(ctx, service.ModelDefault, cfg.Detector, cfg.Detector.Default, store, log)
	if err != nil {
		log.Fatalf("failed to load default model: %v", err)
	}

	drawer, err := annotate.NewDrawer(annotate.Options{
		LineThickness:  cfg.Draw.LineThickness,
		FontSize:       cfg.Draw.FontSize,
		HideLabels:     cfg.Draw.HideLabels,
		HideConfidence: cfg.Draw.HideConfidence,
	})
	if err != nil {
		log.Fatalf("failed to initialize drawer: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to register service metrics: %v", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}

	identifySvc := service.NewIdentifyService(customDet, defaultDet, table, drawer, cfg.Identify, metrics, log)

	app := fiber.New(fiber.Config{
		AppName:      "wastevision",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.CORS())

	var pingers []detector.Pinger
	for _, d := range []detector.Detector{customDet, defaultDet} {
		if p, ok := d.(detector.Pinger); ok {
			pingers = append(pingers, p)
		}
	}
	handlers.RegisterRoutes(app, db, identifySvc, reg, log, pingers...)

	handlers.RegisterSwagger(app, cfg.AppHost)

	go func() {
		<-ctx.Done()
		log.WithField("event", "shutdown_start").Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("http shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{"event": "server_start", "addr": addr, "backend": cfg.Detector.Backend}).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("server stopped")
	}

	for _, d := range []detector.Detector{customDet, defaultDet} {
		if err := d.Close(); err != nil {
			log.WithError(err).WithField("model", d.Name()).Warn("failed to close detector")
		}
	}
	if err := detector.ShutdownRuntime(); err != nil {
		log.WithError(err).Warn("failed to release onnxruntime")
	}
	if db != nil {
		db.Close()
	}

	tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(tctx); err != nil {
		log.WithError(err).Warn("failed to flush traces")
	}
}
