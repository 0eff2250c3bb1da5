package models

import "time"

// Account roles. Promotion is monotonic: USER -> CREATOR. ADMIN is assigned
// out of band and never granted by the approval workflows.
const (
	RoleUser    = "USER"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

// Artifact statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Account represents a registered profile. WalletAddress is the canonical
// 42-character hex identifier that correlates the account with ledger events;
// comparisons against it are always case-insensitive.
type Account struct {
	Id                string    `db:"id"`
	WalletAddress     string    `db:"wallet_address"`
	Username          string    `db:"username"`
	Contact           string    `db:"contact"`
	Role              string    `db:"role"`
	ApprovalRequested bool      `db:"approval_requested"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Artifact represents a creative work submitted by an account.
// LedgerTxHash records the last submission attempt, not confirmation.
type Artifact struct {
	Id             string    `db:"id"`
	AuthorId       string    `db:"author_id"`
	CreatorName    string    `db:"creator_name"`
	Title          string    `db:"title"`
	Category       string    `db:"category"`
	Description    string    `db:"description"`
	Meaning        string    `db:"meaning"`
	MediaRef       string    `db:"media_ref"`
	Address        string    `db:"address"`
	Status         string    `db:"status"`
	Verified       bool      `db:"verified"`
	CertificateRef string    `db:"certificate_ref"`
	LicenseRef     string    `db:"license_ref"`
	LedgerTxHash   string    `db:"ledger_tx_hash"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
