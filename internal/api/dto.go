package api

import (
	"time"

	"chainart-registry-go/internal/models"
)

// AccountResponse is the wire shape of an account.
type AccountResponse struct {
	Id                string    `json:"id"`
	WalletAddress     string    `json:"wallet_address"`
	Username          string    `json:"username"`
	Contact           string    `json:"contact"`
	Role              string    `json:"role"`
	ApprovalRequested bool      `json:"approval_requested"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ArtifactResponse is the wire shape of an artifact. LedgerTxHash is empty
// until a recordArtifact submission has been acknowledged.
type ArtifactResponse struct {
	Id             string    `json:"id"`
	AuthorId       string    `json:"author_id"`
	CreatorName    string    `json:"creator_name"`
	Title          string    `json:"title"`
	Category       string    `json:"category,omitempty"`
	Description    string    `json:"description"`
	Meaning        string    `json:"meaning,omitempty"`
	MediaRef       string    `json:"media_ref"`
	Address        string    `json:"address,omitempty"`
	Status         string    `json:"status"`
	Verified       bool      `json:"verified"`
	CertificateRef string    `json:"certificate_ref,omitempty"`
	LicenseRef     string    `json:"license_ref,omitempty"`
	LedgerTxHash   string    `json:"ledger_tx_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func accountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		Id:                account.Id,
		WalletAddress:     account.WalletAddress,
		Username:          account.Username,
		Contact:           account.Contact,
		Role:              account.Role,
		ApprovalRequested: account.ApprovalRequested,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}

func artifactResponse(artifact *models.Artifact) ArtifactResponse {
	return ArtifactResponse{
		Id:             artifact.Id,
		AuthorId:       artifact.AuthorId,
		CreatorName:    artifact.CreatorName,
		Title:          artifact.Title,
		Category:       artifact.Category,
		Description:    artifact.Description,
		Meaning:        artifact.Meaning,
		MediaRef:       artifact.MediaRef,
		Address:        artifact.Address,
		Status:         artifact.Status,
		Verified:       artifact.Verified,
		CertificateRef: artifact.CertificateRef,
		LicenseRef:     artifact.LicenseRef,
		LedgerTxHash:   artifact.LedgerTxHash,
		CreatedAt:      artifact.CreatedAt,
		UpdatedAt:      artifact.UpdatedAt,
	}
}

func artifactResponses(artifacts []models.Artifact) []ArtifactResponse {
	items := make([]ArtifactResponse, 0, len(artifacts))
	for i := range artifacts {
		items = append(items, artifactResponse(&artifacts[i]))
	}
	return items
}
