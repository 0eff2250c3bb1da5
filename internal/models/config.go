package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Ledger   LedgerConfig
	Watcher  WatcherConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedAdmin       bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string
	Port           string
	RequestTimeout time.Duration
}

// LedgerConfig holds ledger client settings. RPCURL serves write calls and
// views; WSURL serves the event subscription and must be a websocket endpoint.
type LedgerConfig struct {
	RPCURL        string
	WSURL         string
	PrivateKey    string
	ContractFile  string
	SubmitTimeout time.Duration
}

// WatcherConfig holds reconciliation watcher settings
type WatcherConfig struct {
	EventBuffer      int
	ResubscribeDelay time.Duration
}
