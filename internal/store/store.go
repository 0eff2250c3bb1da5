package store

import (
	"context"
	"errors"

	"chainart-registry-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("unique constraint violated")
	ErrAlreadyApproved = errors.New("artifact already approved")
)

// CreateAccountParams contains the parameters for registering an account.
// Role defaults to USER when empty.
type CreateAccountParams struct {
	WalletAddress string
	Username      string
	Contact       string
	Role          string
}

// UpdateAccountParams contains the updatable profile fields. Nil pointers
// leave the corresponding column untouched.
type UpdateAccountParams struct {
	WalletAddress *string
	Username      *string
	Contact       *string
}

// CreateArtifactParams contains the parameters for submitting an artifact.
type CreateArtifactParams struct {
	AuthorId    string
	CreatorName string
	Title       string
	Category    string
	Description string
	Meaning     string
	MediaRef    string
	Address     string
}

// ApproveArtifactParams contains the generated identifiers written alongside
// the PENDING -> APPROVED transition.
type ApproveArtifactParams struct {
	ArtifactId     string
	CertificateRef string
	LicenseRef     string
}

// Repository defines the contract the approval workflows and the
// reconciliation watcher depend on. Implementations must provide standard
// single-row ACID semantics; no cross-row transactions are required.
type Repository interface {
	// --- Accounts ---
	CreateAccount(ctx context.Context, params CreateAccountParams) (*models.Account, error)
	GetAccountById(ctx context.Context, accountId string) (*models.Account, error)
	GetAccountByWallet(ctx context.Context, walletAddress string) (*models.Account, error)
	GetAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, accountId string, params UpdateAccountParams) (*models.Account, error)
	MarkApprovalRequested(ctx context.Context, accountId string) error
	// PromoteCreatorsByWallet promotes every account whose wallet address
	// matches case-insensitively and returns the number of rows updated.
	// Idempotent: rows already at CREATOR are left as they are.
	PromoteCreatorsByWallet(ctx context.Context, walletAddress string) (int64, error)

	// --- Artifacts ---
	CreateArtifact(ctx context.Context, params CreateArtifactParams) (*models.Artifact, error)
	GetArtifactById(ctx context.Context, artifactId string) (*models.Artifact, error)
	ListArtifactsByAuthor(ctx context.Context, authorId string) ([]models.Artifact, error)
	ListArtifactsByStatus(ctx context.Context, status string) ([]models.Artifact, error)
	SearchApprovedArtifacts(ctx context.Context, titleQuery string) ([]models.Artifact, error)
	ApproveArtifact(ctx context.Context, params ApproveArtifactParams) (*models.Artifact, error)
	SetArtifactTxHash(ctx context.Context, artifactId, txHash string) error
	DeleteArtifact(ctx context.Context, artifactId string) error

	// --- Lifecycle ---
	Close()
}
