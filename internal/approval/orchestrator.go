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

// Package approval drives the two approval workflows: creator promotion and
// artifact certification. Each workflow validates locally, submits to the
// ledger gateway, classifies the outcome and only then decides whether the
// repository is written at all. The authoritative CREATOR promotion is
// deferred to the reconciliation watcher; the only exception is the benign
// "already signed" revert, which proves the ledger truth synchronously.
package approval

import (
	"context"
	"errors"
	"time"

	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"
)

// Sentinel errors rejected before any side effect.
var (
	ErrNotAuthorized = errors.New("caller lacks required role")
	ErrInvalidWallet = errors.New("wallet address is not canonical")
	ErrNotCreator    = errors.New("author is not an approved creator")
)

// Orchestrator coordinates the repository and the ledger gateway. One
// workflow runs per inbound request; no state is shared across requests.
type Orchestrator struct {
	db            store.Repository
	gateway       ledger.Gateway
	submitTimeout time.Duration
}

func NewOrchestrator(db store.Repository, gateway ledger.Gateway, submitTimeout time.Duration) *Orchestrator {
	if submitTimeout <= 0 {
		submitTimeout = 30 * time.Second
	}
	return &Orchestrator{
		db:            db,
		gateway:       gateway,
		submitTimeout: submitTimeout,
	}
}

// requireAdmin resolves the caller account and checks the ADMIN role.
func (o *Orchestrator) requireAdmin(ctx context.Context, callerAccountId string) (*models.Account, error) {
	caller, err := o.db.GetAccountById(ctx, callerAccountId)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	return caller, nil
}

// submitCtx bounds a single ledger submission. A timeout classifies as
// unreachable, never as success.
func (o *Orchestrator) submitCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.submitTimeout)
}
