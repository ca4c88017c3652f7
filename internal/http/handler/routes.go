package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tracker/internal/service"
	"tracker/internal/store"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal: parse, delegate, translate errors.
func RegisterRoutes(app *fiber.App, projSvc service.ProjectService, issuerSvc service.IssuerService, st store.Client) {
	app.Get("/health", HealthCheck(st))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/project/:publicId", GetProject(projSvc))
	app.Post("/generate-public-ids", GeneratePublicIDs(issuerSvc))
}

// HealthCheck verifies the external record store is reachable by retrieving
// the collection schema with a short timeout.
func HealthCheck(st store.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if _, err := st.RetrieveSchema(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// GetProject serves the public tracker payload for one project.
func GetProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Strip anything outside the public-id alphabet before the value
		// gets anywhere near a store query.
		id := service.SanitizePublicID(c.Params("publicId"))
		if id == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "a valid public id is required")
		}

		res, err := svc.GetProject(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "project not found")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "a valid public id is required")
			default:
				return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "failed to fetch project from the record store")
			}
		}
		return c.JSON(res)
	}
}

// GeneratePublicIDs triggers a backfill of public identifiers for records
// that lack one. Partial failures are reported in the counts, not as errors.
func GeneratePublicIDs(svc service.IssuerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.IssueMissing(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "failed to scan the record store")
		}
		return c.JSON(res)
	}
}
