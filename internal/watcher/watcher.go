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

package watcher

import (
	"context"
	"time"

	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"go.uber.org/zap"
)

const (
	defaultEventBuffer      = 64
	defaultResubscribeDelay = 5 * time.Second
)

// Watcher subscribes to confirmed CreatorSigned events and promotes the
// matching local accounts to CREATOR. It is the convergence path for
// promotions: the orchestrator submits, the watcher applies.
type Watcher struct {
	dbService store.Repository
	gateway   ledger.Gateway

	eventBuffer      int
	resubscribeDelay time.Duration

	// Control channels
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewWatcher creates an event watcher. Zero config values fall back to
// defaults.
func NewWatcher(dbService store.Repository, gateway ledger.Gateway, cfg models.WatcherConfig) *Watcher {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}
	if cfg.ResubscribeDelay <= 0 {
		cfg.ResubscribeDelay = defaultResubscribeDelay
	}
	return &Watcher{
		dbService:        dbService,
		gateway:          gateway,
		eventBuffer:      cfg.EventBuffer,
		resubscribeDelay: cfg.ResubscribeDelay,
		stopChan:         make(chan struct{}),
		doneChan:         make(chan struct{}),
	}
}

// Start begins the event monitoring process
func (w *Watcher) Start(ctx context.Context) error {
	zap.L().Info("Starting creator event watcher")

	// Startup recovery: promotions whose event fired while we were down
	// are reconciled against the ledger before live watching begins.
	if err := w.performStartupRecovery(ctx); err != nil {
		zap.L().Error("Startup recovery failed", zap.Error(err))
	}

	go w.watchLoop(ctx)

	zap.L().Info("Creator event watcher started successfully",
		zap.Int("event_buffer", w.eventBuffer),
		zap.Duration("resubscribe_delay", w.resubscribeDelay))

	return nil
}

// Stop gracefully stops the watcher
func (w *Watcher) Stop() {
	zap.L().Info("Stopping creator event watcher")
	close(w.stopChan)
	<-w.doneChan
	zap.L().Info("Creator event watcher stopped")
}

// watchLoop keeps a live subscription open, resubscribing after failures.
func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneChan)

	for {
		if err := w.consume(ctx); err != nil {
			zap.L().Error("Event subscription failed, will resubscribe",
				zap.Error(err),
				zap.Duration("delay", w.resubscribeDelay))
		}

		select {
		case <-time.After(w.resubscribeDelay):
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// consume drains one subscription until it errors or the watcher stops.
// A nil return means an orderly stop; an error triggers a resubscribe.
func (w *Watcher) consume(ctx context.Context) error {
	events := make(chan models.CreatorSignedEvent, w.eventBuffer)
	sub, err := w.gateway.WatchCreatorSigned(ctx, events)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	zap.L().Info("Subscribed to CreatorSigned events")

	for {
		select {
		case event := <-events:
			w.handleEvent(ctx, event)
		case err := <-sub.Err():
			return err
		case <-w.stopChan:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// handleEvent applies a confirmed CreatorSigned event to the repository.
// The promotion statement is idempotent, so duplicate deliveries and
// replays after resubscription are harmless.
func (w *Watcher) handleEvent(ctx context.Context, event models.CreatorSignedEvent) {
	promoted, err := w.dbService.PromoteCreatorsByWallet(ctx, event.WalletAddress)
	if err != nil {
		zap.L().Error("Failed to apply CreatorSigned event",
			zap.String("wallet_address", event.WalletAddress),
			zap.String("tx_hash", event.TxHash),
			zap.Error(err))
		return
	}

	if promoted == 0 {
		// The ledger can sign wallets this registry never issued an
		// account for. Not an error.
		zap.L().Warn("CreatorSigned event matched no local account",
			zap.String("wallet_address", event.WalletAddress),
			zap.String("tx_hash", event.TxHash),
			zap.Uint64("block_number", event.BlockNumber))
		return
	}

	zap.L().Info("Account promoted to CREATOR on confirmed event",
		zap.String("wallet_address", event.WalletAddress),
		zap.String("tx_hash", event.TxHash),
		zap.Int64("accounts_promoted", promoted))
}

// performStartupRecovery promotes accounts whose signCreator submission was
// acknowledged before a restart but whose CreatorSigned event was missed.
func (w *Watcher) performStartupRecovery(ctx context.Context) error {
	accounts, err := w.dbService.GetAccounts(ctx)
	if err != nil {
		return err
	}

	// Submission leaves no local marker, so every USER account with a
	// usable wallet is checked against the ledger view.
	recovered := 0
	for _, account := range accounts {
		if account.Role != models.RoleUser || !ledger.IsCanonicalAddress(account.WalletAddress) {
			continue
		}

		creator, err := w.gateway.CreatorSigned(ctx, account.WalletAddress)
		if err != nil {
			zap.L().Warn("Recovery check failed, account left pending",
				zap.String("account_id", account.Id),
				zap.String("wallet_address", account.WalletAddress),
				zap.Error(err))
			continue
		}
		if !creator.Signed {
			continue
		}

		promoted, err := w.dbService.PromoteCreatorsByWallet(ctx, account.WalletAddress)
		if err != nil {
			zap.L().Error("Failed to promote account during recovery",
				zap.String("account_id", account.Id),
				zap.Error(err))
			continue
		}
		recovered += int(promoted)
	}

	if recovered > 0 {
		zap.L().Info("Startup recovery promoted pending accounts",
			zap.Int("accounts_promoted", recovered))
	}
	return nil
}
