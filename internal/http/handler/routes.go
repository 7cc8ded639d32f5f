package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"wastevision/docs"
	"wastevision/internal/detector"
	"wastevision/internal/service"
)

const identifyPath = "/identify"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when labels are not backed by postgres.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.IdentifyService, gatherer prometheus.Gatherer, log logrus.FieldLogger, pingers ...detector.Pinger) {
	app.Get("/health", HealthCheck(db, pingers...))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Post(identifyPath, Identify(svc, log))
	app.Get("/labels", ListLabels(svc))
}

// RegisterSwagger serves the generated API document under /swagger.
// The host is fixed here, before any request can read the document. An empty
// host lets Swagger UI target whichever host served the page; schemes are left
// empty for the same reason.
func RegisterSwagger(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	app.Get("/swagger/*", swagger.HandlerDefault)
}
