package api

import (
	"context"
	"net/http"
	"time"

	"chainart-registry-go/internal/database"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	dbService *database.Service
}

func NewHealthHandler(dbService *database.Service) *HealthHandler {
	return &HealthHandler{dbService: dbService}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready reports service readiness by checking the database. The ledger is
// deliberately excluded: an unreachable ledger degrades outcomes but does
// not stop the service from answering.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.dbService.Ping(ctx); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
