package api

import (
	"net/http"

	"chainart-registry-go/internal/approval"

	"github.com/gofiber/fiber/v2"
)

// ApprovalHandler exposes the two approval workflows. Status codes encode
// outcome confidence: 200 means the local state is settled, 202 means the
// definitive answer is still owed to reconciliation or the operator.
type ApprovalHandler struct {
	orchestrator *approval.Orchestrator
}

func NewApprovalHandler(orchestrator *approval.Orchestrator) *ApprovalHandler {
	return &ApprovalHandler{orchestrator: orchestrator}
}

type promoteCreatorRequest struct {
	TargetAccountId string `json:"target_account_id"`
	AdminAccountId  string `json:"admin_account_id"`
}

type approveArtifactRequest struct {
	ArtifactId       string `json:"artifact_id"`
	AdminAccountId   string `json:"admin_account_id"`
	CreatorAccountId string `json:"creator_account_id"`
}

// PromoteCreator POST /api/creator/approve.
func (h *ApprovalHandler) PromoteCreator(c *fiber.Ctx) error {
	var req promoteCreatorRequest
	if err := c.BodyParser(&req); err != nil {
		return newValidationError("invalid payload")
	}
	if req.TargetAccountId == "" || req.AdminAccountId == "" {
		return newValidationError("target_account_id, admin_account_id required")
	}

	result, err := h.orchestrator.PromoteToCreator(c.UserContext(), req.TargetAccountId, req.AdminAccountId)
	if err != nil {
		return err
	}

	body := fiber.Map{
		"outcome": result.Outcome,
		"account": accountResponse(result.Account),
	}
	if result.TxHash != "" {
		body["tx_hash"] = result.TxHash
	}

	// A pending submission is accepted, not confirmed: the role flips only
	// when the watcher sees the CreatorSigned event.
	status := http.StatusOK
	if result.Outcome == approval.PromotionSubmitted {
		status = http.StatusAccepted
	}
	return c.Status(status).JSON(fiber.Map{"data": body})
}

// ApproveArtifact POST /api/artifact/approve.
func (h *ApprovalHandler) ApproveArtifact(c *fiber.Ctx) error {
	var req approveArtifactRequest
	if err := c.BodyParser(&req); err != nil {
		return newValidationError("invalid payload")
	}
	if req.ArtifactId == "" || req.AdminAccountId == "" || req.CreatorAccountId == "" {
		return newValidationError("artifact_id, admin_account_id, creator_account_id required")
	}

	result, err := h.orchestrator.ApproveArtifact(c.UserContext(),
		req.ArtifactId, req.AdminAccountId, req.CreatorAccountId)
	if err != nil {
		return err
	}

	body := fiber.Map{
		"outcome":  result.Outcome,
		"artifact": artifactResponse(result.Artifact),
	}
	if result.SignTxHash != "" {
		body["sign_tx_hash"] = result.SignTxHash
	}
	if result.RecordTxHash != "" {
		body["tx_hash"] = result.RecordTxHash
	}

	if result.Outcome != approval.CertificationPartial {
		return c.Status(http.StatusOK).JSON(fiber.Map{"data": body})
	}

	// Partial success: the artifact is approved locally AND the ledger leg
	// failed. Both facts go out together in one body.
	body["ledger_error"] = fiber.Map{
		"kind":    result.LedgerFailure.Kind.String(),
		"message": result.LedgerFailure.Error(),
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": body})
}
