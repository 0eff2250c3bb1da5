package api

import (
	"net/http"
	"strings"

	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ProfilesHandler manages account registration and profile reads/updates.
// These endpoints never touch the ledger.
type ProfilesHandler struct {
	db store.Repository
}

func NewProfilesHandler(db store.Repository) *ProfilesHandler {
	return &ProfilesHandler{db: db}
}

type createProfileRequest struct {
	WalletAddress string `json:"wallet_address"`
	Username      string `json:"username"`
	Contact       string `json:"contact"`
}

type updateProfileRequest struct {
	WalletAddress *string `json:"wallet_address"`
	Username      *string `json:"username"`
	Contact       *string `json:"contact"`
}

// Create POST /api/profile. New accounts always start as USER; roles only
// change through the promotion workflow.
func (h *ProfilesHandler) Create(c *fiber.Ctx) error {
	var req createProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return newValidationError("invalid payload")
	}
	req.WalletAddress = strings.TrimSpace(req.WalletAddress)
	req.Username = strings.TrimSpace(req.Username)
	if req.WalletAddress == "" || req.Username == "" || req.Contact == "" {
		return newValidationError("wallet_address, username, contact required")
	}
	if !ledger.IsCanonicalAddress(req.WalletAddress) {
		return newValidationError("wallet_address must be a 42-character 0x-prefixed hex address")
	}

	account, err := h.db.CreateAccount(c.UserContext(), store.CreateAccountParams{
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		Contact:       req.Contact,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountResponse(account)})
}

// Get GET /api/profile/:id.
func (h *ProfilesHandler) Get(c *fiber.Ctx) error {
	account, err := h.db.GetAccountById(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

// Update PATCH /api/profile/:id. Only the profile fields are updatable;
// role and approval_requested are owned by the approval workflows.
func (h *ProfilesHandler) Update(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return newValidationError("invalid payload")
	}
	if req.WalletAddress == nil && req.Username == nil && req.Contact == nil {
		return newValidationError("no updatable fields provided")
	}
	if req.WalletAddress != nil && !ledger.IsCanonicalAddress(*req.WalletAddress) {
		return newValidationError("wallet_address must be a 42-character 0x-prefixed hex address")
	}

	account, err := h.db.UpdateAccount(c.UserContext(), c.Params("id"), store.UpdateAccountParams{
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		Contact:       req.Contact,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}
