package models

// CreatorSignedEvent is a confirmed CreatorSigned contract event as delivered
// to the reconciliation watcher. WalletAddress arrives in whatever casing the
// client reports; consumers must compare it case-insensitively.
type CreatorSignedEvent struct {
	WalletAddress string
	TxHash        string
	BlockNumber   uint64
}

// LedgerCreator is the contract-side view of a creator record.
type LedgerCreator struct {
	Name   string
	Signed bool
}
