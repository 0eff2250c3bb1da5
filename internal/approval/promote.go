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

package approval

import (
	"context"
	"fmt"

	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"

	"go.uber.org/zap"
)

// PromotionOutcome reports how a promotion request resolved. The three values
// carry different confidence levels and must stay distinguishable to callers.
type PromotionOutcome string

const (
	// PromotionAlreadySatisfied: the account was already CREATOR locally;
	// no ledger call was issued.
	PromotionAlreadySatisfied PromotionOutcome = "ALREADY_SATISFIED"

	// PromotionSubmitted: the signCreator call was acknowledged. The local
	// role is deliberately NOT written; the watcher promotes on the
	// confirmed CreatorSigned event.
	PromotionSubmitted PromotionOutcome = "SUBMITTED_PENDING_CONFIRMATION"

	// PromotionConverged: the ledger reported the account already signed,
	// so the local role was converged to CREATOR synchronously.
	PromotionConverged PromotionOutcome = "CONFIRMED_VIA_RECONCILIATION"
)

// PromotionResult is returned on every non-error path. TxHash is only set
// for PromotionSubmitted.
type PromotionResult struct {
	Outcome PromotionOutcome
	TxHash  string
	Account *models.Account
}

// PromoteToCreator runs the creator promotion workflow:
// validate -> authorize -> idempotence check -> submit -> classify.
// No repository write precedes the ledger outcome; convergence happens only
// on the benign already-signed revert.
func (o *Orchestrator) PromoteToCreator(ctx context.Context, targetAccountId, callerAccountId string) (*PromotionResult, error) {
	if _, err := o.requireAdmin(ctx, callerAccountId); err != nil {
		return nil, err
	}

	target, err := o.db.GetAccountById(ctx, targetAccountId)
	if err != nil {
		return nil, err
	}

	// Fail fast before any side effect: no ledger action may be attempted
	// for an account without a canonical wallet address.
	if !ledger.IsCanonicalAddress(target.WalletAddress) {
		return nil, fmt.Errorf("account %s: %w", target.Id, ErrInvalidWallet)
	}

	// Idempotence: a second promotion of a CREATOR issues no ledger call.
	if target.Role == models.RoleCreator {
		if err := o.db.MarkApprovalRequested(ctx, target.Id); err != nil {
			return nil, err
		}
		refreshed, err := o.db.GetAccountById(ctx, target.Id)
		if err != nil {
			return nil, err
		}
		zap.L().Info("Promotion already satisfied",
			zap.String("account_id", target.Id),
			zap.String("wallet_address", target.WalletAddress))
		return &PromotionResult{Outcome: PromotionAlreadySatisfied, Account: refreshed}, nil
	}

	submitCtx, cancel := o.submitCtx(ctx)
	defer cancel()

	txHash, err := o.gateway.SignCreator(submitCtx, target.WalletAddress, target.Username)
	if err == nil {
		// Submission acknowledged. The role stays USER until the watcher
		// sees the confirmed CreatorSigned event.
		zap.L().Info("signCreator submitted, promotion pending confirmation",
			zap.String("account_id", target.Id),
			zap.String("wallet_address", target.WalletAddress),
			zap.String("tx_hash", txHash))
		return &PromotionResult{Outcome: PromotionSubmitted, TxHash: txHash, Account: target}, nil
	}

	classified := ledger.Classify(err)
	switch classified.Kind {
	case ledger.KindKnownRevert:
		// The ledger already holds the signed record; converge locally now.
		if _, convergeErr := o.db.PromoteCreatorsByWallet(ctx, target.WalletAddress); convergeErr != nil {
			return nil, convergeErr
		}
		refreshed, getErr := o.db.GetAccountById(ctx, target.Id)
		if getErr != nil {
			return nil, getErr
		}
		zap.L().Info("Ledger reports creator already signed, local state converged",
			zap.String("account_id", target.Id),
			zap.String("wallet_address", target.WalletAddress))
		return &PromotionResult{Outcome: PromotionConverged, Account: refreshed}, nil

	case ledger.KindUnreachable:
		// Logged distinctly from reverts for operational triage.
		zap.L().Error("Ledger unreachable during promotion, no local state changed",
			zap.String("account_id", target.Id),
			zap.String("wallet_address", target.WalletAddress),
			zap.Error(classified))
		return nil, classified

	default:
		zap.L().Error("Ledger rejected signCreator, no local state changed",
			zap.String("account_id", target.Id),
			zap.String("wallet_address", target.WalletAddress),
			zap.String("kind", classified.Kind.String()),
			zap.Error(classified))
		return nil, classified
	}
}
