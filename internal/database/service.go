/**
 * Copyright 2025-present ChainArt
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.Repository.
var _ store.Repository = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(cfg.SeedAdmin); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

// Ping verifies the underlying connection is still usable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(seedAdmin bool) error {
	schema := `
	-- Create accounts table
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL UNIQUE COLLATE NOCASE,
		username TEXT NOT NULL UNIQUE,
		contact TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'USER',
		approval_requested BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Wallet lookups during reconciliation are case-insensitive
	CREATE INDEX IF NOT EXISTS idx_accounts_wallet ON accounts(wallet_address COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_accounts_role ON accounts(role);

	-- Create artifacts table
	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		creator_name TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT,
		description TEXT,
		meaning TEXT,
		media_ref TEXT NOT NULL,
		address TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING',
		verified BOOLEAN NOT NULL DEFAULT 0,
		certificate_ref TEXT,
		license_ref TEXT,
		ledger_tx_hash TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_author ON artifacts(author_id);
	CREATE INDEX IF NOT EXISTS idx_artifacts_status ON artifacts(status);
	CREATE INDEX IF NOT EXISTS idx_artifacts_created_at ON artifacts(created_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}

	// Insert a bootstrap admin plus two demo users if configured to do so
	if seedAdmin {
		accounts := []struct {
			wallet   string
			username string
			contact  string
			role     string
		}{
			{"0x90F79bf6EB2c4f870365E785982E1f101E93b906", "registry-admin", "admin@chainart.example", models.RoleAdmin},
			{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "alice", "alice@chainart.example", models.RoleUser},
			{"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "bob", "bob@chainart.example", models.RoleUser},
		}

		for _, a := range accounts {
			_, err := s.db.Exec(`INSERT OR IGNORE INTO accounts (id, wallet_address, username, contact, role) VALUES (?, ?, ?, ?, ?)`,
				uuid.New().String(), a.wallet, a.username, a.contact, a.role)
			if err != nil {
				zap.L().Error("Failed to seed account", zap.String("username", a.username), zap.Error(err))
			} else {
				zap.L().Info("Seed account created", zap.String("username", a.username), zap.String("role", a.role))
			}
		}
	} else {
		zap.L().Info("Skipping seed account creation (SEED_ADMIN=false)")
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err is a SQLite foreign key failure.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
