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
	"math/rand/v2"
	"time"

	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"go.uber.org/zap"
)

// CertificationOutcome reports how a certification request resolved.
type CertificationOutcome string

const (
	// CertificationAlreadySatisfied: the artifact was already approved;
	// idempotent success, no ledger call was issued.
	CertificationAlreadySatisfied CertificationOutcome = "ALREADY_SATISFIED"

	// CertificationSubmitted: approved locally and the recordArtifact
	// submission was acknowledged.
	CertificationSubmitted CertificationOutcome = "SUBMITTED"

	// CertificationPartial: approved locally but the recordArtifact leg
	// failed; LedgerFailure carries the classification.
	CertificationPartial CertificationOutcome = "APPROVED_LOCALLY_LEDGER_FAILED"
)

// CertificationResult is the outcome of an artifact approval. The local write
// and the ledger leg can legitimately separate: Artifact always reflects the
// persisted local truth, LedgerFailure flags a failed recordArtifact leg.
// Both must be surfaced together, never collapsed into one signal.
type CertificationResult struct {
	Outcome       CertificationOutcome
	Artifact      *models.Artifact
	SignTxHash    string
	RecordTxHash  string
	LedgerFailure *ledger.ClassifiedError
}

// Submitted reports whether the recordArtifact leg was acknowledged.
func (r *CertificationResult) Submitted() bool {
	return r.Outcome == CertificationSubmitted
}

// ApproveArtifact runs the artifact certification workflow. Unlike promotion,
// the local approval write leads the ledger call: the generated certificate
// identifiers are local bookkeeping, and there is no benign-revert case to
// converge against. A failed ledger leg is reported, not rolled back.
func (o *Orchestrator) ApproveArtifact(ctx context.Context, artifactId, approverAccountId, creatorAccountId string) (*CertificationResult, error) {
	if _, err := o.requireAdmin(ctx, approverAccountId); err != nil {
		return nil, err
	}

	artifact, err := o.db.GetArtifactById(ctx, artifactId)
	if err != nil {
		return nil, err
	}
	// A second approval of the same artifact resolves as idempotent
	// success. The generated identifiers stay as they are.
	if artifact.Verified {
		zap.L().Info("Certification already satisfied",
			zap.String("artifact_id", artifact.Id))
		return &CertificationResult{Outcome: CertificationAlreadySatisfied, Artifact: artifact}, nil
	}

	creator, err := o.db.GetAccountById(ctx, creatorAccountId)
	if err != nil {
		return nil, err
	}
	if !ledger.IsCanonicalAddress(creator.WalletAddress) {
		return nil, fmt.Errorf("creator %s: %w", creator.Id, ErrInvalidWallet)
	}

	// An artifact cannot be certified for an unsigned creator. Check the
	// ledger-side record and sign first when needed; only submission
	// acknowledgement is awaited, not confirmation.
	var signTxHash string
	viewCtx, cancelView := o.submitCtx(ctx)
	creatorState, err := o.gateway.CreatorSigned(viewCtx, creator.WalletAddress)
	cancelView()
	if err != nil {
		classified := ledger.Classify(err)
		zap.L().Error("Unable to read creator state from ledger, certification aborted",
			zap.String("artifact_id", artifact.Id),
			zap.String("wallet_address", creator.WalletAddress),
			zap.Error(classified))
		return nil, classified
	}

	if !creatorState.Signed {
		signCtx, cancelSign := o.submitCtx(ctx)
		signTxHash, err = o.gateway.SignCreator(signCtx, creator.WalletAddress, creator.Username)
		cancelSign()
		if err != nil {
			classified := ledger.Classify(err)
			if classified.Kind == ledger.KindKnownRevert {
				// Signed between the view call and the submission; proceed.
				zap.L().Info("Creator signed concurrently, continuing certification",
					zap.String("wallet_address", creator.WalletAddress))
			} else {
				zap.L().Error("signCreator failed, certification aborted before any local write",
					zap.String("artifact_id", artifact.Id),
					zap.String("wallet_address", creator.WalletAddress),
					zap.Error(classified))
				return nil, classified
			}
		}
	}

	// Optimistic local write. The database is the system of record for
	// "approved for display"; the ledger leg below anchors provenance.
	approved, err := o.db.ApproveArtifact(ctx, store.ApproveArtifactParams{
		ArtifactId:     artifact.Id,
		CertificateRef: newCertificateRef(),
		LicenseRef:     newLicenseRef(),
	})
	if err != nil {
		return nil, err
	}

	recordCtx, cancelRecord := o.submitCtx(ctx)
	recordTxHash, err := o.gateway.RecordArtifact(recordCtx,
		creator.WalletAddress, artifact.Title, artifact.Description, artifact.MediaRef)
	cancelRecord()
	if err != nil {
		// Deliberate partial success: local approval stands, the ledger
		// leg is flagged for the caller instead of silently rolled back.
		classified := ledger.Classify(err)
		zap.L().Warn("Artifact approved locally but recordArtifact failed, states diverged",
			zap.String("artifact_id", approved.Id),
			zap.String("wallet_address", creator.WalletAddress),
			zap.String("kind", classified.Kind.String()),
			zap.Error(classified))
		return &CertificationResult{
			Outcome:       CertificationPartial,
			Artifact:      approved,
			SignTxHash:    signTxHash,
			LedgerFailure: classified,
		}, nil
	}

	if err := o.db.SetArtifactTxHash(ctx, approved.Id, recordTxHash); err != nil {
		// The submission went through; losing the handle is log-worthy but
		// must not fail the request.
		zap.L().Warn("Failed to persist recordArtifact tx hash",
			zap.String("artifact_id", approved.Id),
			zap.String("tx_hash", recordTxHash),
			zap.Error(err))
	} else {
		approved.LedgerTxHash = recordTxHash
	}

	zap.L().Info("Artifact certification submitted",
		zap.String("artifact_id", approved.Id),
		zap.String("tx_hash", recordTxHash))

	return &CertificationResult{
		Outcome:      CertificationSubmitted,
		Artifact:     approved,
		SignTxHash:   signTxHash,
		RecordTxHash: recordTxHash,
	}, nil
}

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func refCode(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = refCharset[rand.IntN(len(refCharset))]
	}
	return string(buf)
}

func newCertificateRef() string {
	return fmt.Sprintf("HC-%d-%s", time.Now().Year(), refCode(4))
}

func newLicenseRef() string {
	return fmt.Sprintf("Creative Commons CC %s-%s-%s 4.0", refCode(2), refCode(2), refCode(2))
}
