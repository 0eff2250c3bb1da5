package api

import (
	"net/http"
	"strings"

	"chainart-registry-go/internal/approval"
	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ArtifactsHandler manages artifact submission and catalogue reads.
type ArtifactsHandler struct {
	db           store.Repository
	orchestrator *approval.Orchestrator
}

func NewArtifactsHandler(db store.Repository, orchestrator *approval.Orchestrator) *ArtifactsHandler {
	return &ArtifactsHandler{db: db, orchestrator: orchestrator}
}

type createArtifactRequest struct {
	AuthorId    string `json:"author_id"`
	CreatorName string `json:"creator_name"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Meaning     string `json:"meaning"`
	MediaRef    string `json:"media_ref"`
	Address     string `json:"address"`
}

type deleteArtifactRequest struct {
	ArtifactId  string `json:"artifact_id"`
	RequesterId string `json:"requester_id"`
}

// Create POST /api/artifact.
func (h *ArtifactsHandler) Create(c *fiber.Ctx) error {
	var req createArtifactRequest
	if err := c.BodyParser(&req); err != nil {
		return newValidationError("invalid payload")
	}
	if req.AuthorId == "" || strings.TrimSpace(req.Title) == "" || req.MediaRef == "" {
		return newValidationError("author_id, title, media_ref required")
	}

	artifact, err := h.orchestrator.SubmitArtifact(c.UserContext(), store.CreateArtifactParams{
		AuthorId:    req.AuthorId,
		CreatorName: req.CreatorName,
		Title:       strings.TrimSpace(req.Title),
		Category:    req.Category,
		Description: req.Description,
		Meaning:     req.Meaning,
		MediaRef:    req.MediaRef,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": artifactResponse(artifact)})
}

// Get GET /api/artifact/:id.
func (h *ArtifactsHandler) Get(c *fiber.Ctx) error {
	artifact, err := h.db.GetArtifactById(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": artifactResponse(artifact)})
}

// ListPending GET /api/artifact/pending.
func (h *ArtifactsHandler) ListPending(c *fiber.Ctx) error {
	artifacts, err := h.db.ListArtifactsByStatus(c.UserContext(), models.StatusPending)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": artifactResponses(artifacts)})
}

// ListApproved GET /api/artifact/approved.
func (h *ArtifactsHandler) ListApproved(c *fiber.Ctx) error {
	artifacts, err := h.db.ListArtifactsByStatus(c.UserContext(), models.StatusApproved)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": artifactResponses(artifacts)})
}

// Search GET /api/artifact/search?title=. Only approved artifacts are
// searchable; pending submissions stay out of the public catalogue.
func (h *ArtifactsHandler) Search(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		return newValidationError("title query parameter required")
	}
	artifacts, err := h.db.SearchApprovedArtifacts(c.UserContext(), title)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": artifactResponses(artifacts)})
}

// Delete DELETE /api/artifact. Admin only; local removal, the ledger record
// is append-only and stays.
func (h *ArtifactsHandler) Delete(c *fiber.Ctx) error {
	var req deleteArtifactRequest
	if err := c.BodyParser(&req); err != nil {
		return newValidationError("invalid payload")
	}
	if req.ArtifactId == "" || req.RequesterId == "" {
		return newValidationError("artifact_id, requester_id required")
	}

	requester, err := h.db.GetAccountById(c.UserContext(), req.RequesterId)
	if err != nil {
		return err
	}
	if requester.Role != models.RoleAdmin {
		return approval.ErrNotAuthorized
	}

	if err := h.db.DeleteArtifact(c.UserContext(), req.ArtifactId); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": req.ArtifactId}})
}
