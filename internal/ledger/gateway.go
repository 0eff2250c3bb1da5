package ledger

import (
	"context"

	"chainart-registry-go/internal/models"
)

// Subscription is a live event subscription. Err delivers at most one
// transport error and is the signal for the watcher to resubscribe.
type Subscription interface {
	Err() <-chan error
	Unsubscribe()
}

// Gateway wraps the contract client the approval workflows and the
// reconciliation watcher depend on. Implementations submit write calls
// without waiting for block confirmation; confirmation only ever arrives
// through the event subscription.
type Gateway interface {
	// SignCreator submits the signCreator write call and returns the
	// transaction hash on submission acknowledgement.
	SignCreator(ctx context.Context, walletAddress, displayName string) (string, error)

	// RecordArtifact submits the recordArtifact write call.
	RecordArtifact(ctx context.Context, walletAddress, title, description, mediaRef string) (string, error)

	// CreatorSigned reads the contract-side creator record.
	CreatorSigned(ctx context.Context, walletAddress string) (*models.LedgerCreator, error)

	// WatchCreatorSigned delivers confirmed CreatorSigned events into sink,
	// at-least-once, in confirmation order.
	WatchCreatorSigned(ctx context.Context, sink chan<- models.CreatorSignedEvent) (Subscription, error)

	Close()
}
