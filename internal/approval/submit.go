package approval

import (
	"context"
	"fmt"

	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"go.uber.org/zap"
)

// SubmitArtifact registers a new PENDING artifact. Only CREATOR accounts may
// author artifacts; the role check runs before any write. No ledger call is
// made here: provenance is anchored at certification time.
func (o *Orchestrator) SubmitArtifact(ctx context.Context, params store.CreateArtifactParams) (*models.Artifact, error) {
	author, err := o.db.GetAccountById(ctx, params.AuthorId)
	if err != nil {
		return nil, err
	}
	if author.Role != models.RoleCreator && author.Role != models.RoleAdmin {
		return nil, fmt.Errorf("account %s: %w", author.Id, ErrNotCreator)
	}

	if params.CreatorName == "" {
		params.CreatorName = author.Username
	}

	artifact, err := o.db.CreateArtifact(ctx, params)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Artifact submitted",
		zap.String("artifact_id", artifact.Id),
		zap.String("author_id", author.Id),
		zap.String("title", artifact.Title))

	return artifact, nil
}
