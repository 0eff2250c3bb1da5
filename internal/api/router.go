package api

import (
	"github.com/gofiber/fiber/v2"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *HealthHandler
	Profiles  *ProfilesHandler
	Artifacts *ArtifactsHandler
	Approval  *ApprovalHandler
}

// RegisterRoutes wires HTTP routes. Static artifact routes are registered
// before the :id parameter route so they are not captured by it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	apiGroup := app.Group("/api")

	apiGroup.Post("/profile", cfg.Profiles.Create)
	apiGroup.Get("/profile/:id", cfg.Profiles.Get)
	apiGroup.Patch("/profile/:id", cfg.Profiles.Update)

	apiGroup.Post("/artifact", cfg.Artifacts.Create)
	apiGroup.Get("/artifact/pending", cfg.Artifacts.ListPending)
	apiGroup.Get("/artifact/approved", cfg.Artifacts.ListApproved)
	apiGroup.Get("/artifact/search", cfg.Artifacts.Search)
	apiGroup.Get("/artifact/:id", cfg.Artifacts.Get)
	apiGroup.Delete("/artifact", cfg.Artifacts.Delete)

	apiGroup.Post("/creator/approve", cfg.Approval.PromoteCreator)
	apiGroup.Post("/artifact/approve", cfg.Approval.ApproveArtifact)
}
