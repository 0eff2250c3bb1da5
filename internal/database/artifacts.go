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
	"go.uber.org/zap"
)

func (s *Service) CreateArtifact(ctx context.Context, params store.CreateArtifactParams) (*models.Artifact, error) {
	artifactId := uuid.New().String()

	zap.L().Info("Creating artifact",
		zap.String("id", artifactId),
		zap.String("title", params.Title),
		zap.String("author_id", params.AuthorId))

	_, err := s.db.ExecContext(ctx, queryInsertArtifact,
		artifactId, params.AuthorId, params.CreatorName, params.Title, params.Category,
		params.Description, params.Meaning, params.MediaRef, params.Address)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("author %s: %w", params.AuthorId, store.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("artifact already registered: %w", store.ErrDuplicate)
		}
		zap.L().Error("Failed to insert artifact", zap.String("title", params.Title), zap.Error(err))
		return nil, fmt.Errorf("unable to insert artifact: %w", err)
	}

	return s.GetArtifactById(ctx, artifactId)
}

func (s *Service) GetArtifactById(ctx context.Context, artifactId string) (*models.Artifact, error) {
	zap.L().Debug("Querying artifact by ID", zap.String("artifact_id", artifactId))

	var artifact models.Artifact
	err := s.db.QueryRowContext(ctx, queryGetArtifactById, artifactId).Scan(scanArtifactDest(&artifact)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("artifact %s: %w", artifactId, store.ErrNotFound)
		}
		zap.L().Error("Failed to query artifact by ID", zap.String("artifact_id", artifactId), zap.Error(err))
		return nil, fmt.Errorf("unable to query artifact by ID: %w", err)
	}

	return &artifact, nil
}

func (s *Service) ListArtifactsByAuthor(ctx context.Context, authorId string) ([]models.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, queryListArtifactsByAuthor, authorId)
	if err != nil {
		zap.L().Error("Failed to query artifacts by author", zap.String("author_id", authorId), zap.Error(err))
		return nil, fmt.Errorf("unable to query artifacts by author: %w", err)
	}
	return collectArtifacts(rows)
}

func (s *Service) ListArtifactsByStatus(ctx context.Context, status string) ([]models.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, queryListArtifactsByStatus, status)
	if err != nil {
		zap.L().Error("Failed to query artifacts by status", zap.String("status", status), zap.Error(err))
		return nil, fmt.Errorf("unable to query artifacts by status: %w", err)
	}
	return collectArtifacts(rows)
}

func (s *Service) SearchApprovedArtifacts(ctx context.Context, titleQuery string) ([]models.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, querySearchApprovedArtifacts, titleQuery)
	if err != nil {
		zap.L().Error("Failed to search artifacts", zap.String("title_query", titleQuery), zap.Error(err))
		return nil, fmt.Errorf("unable to search artifacts: %w", err)
	}
	return collectArtifacts(rows)
}

// ApproveArtifact performs the conditional PENDING -> APPROVED transition.
// The WHERE verified = 0 guard makes a second approval attempt report
// store.ErrAlreadyApproved instead of overwriting the generated identifiers.
func (s *Service) ApproveArtifact(ctx context.Context, params store.ApproveArtifactParams) (*models.Artifact, error) {
	result, err := s.db.ExecContext(ctx, queryApproveArtifact,
		params.CertificateRef, params.LicenseRef, params.ArtifactId)
	if err != nil {
		zap.L().Error("Failed to approve artifact", zap.String("artifact_id", params.ArtifactId), zap.Error(err))
		return nil, fmt.Errorf("unable to approve artifact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Zero rows means either the artifact is missing or already verified.
		if _, getErr := s.GetArtifactById(ctx, params.ArtifactId); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("artifact %s: %w", params.ArtifactId, store.ErrAlreadyApproved)
	}

	zap.L().Info("Artifact approved",
		zap.String("artifact_id", params.ArtifactId),
		zap.String("certificate_ref", params.CertificateRef),
		zap.String("license_ref", params.LicenseRef))

	return s.GetArtifactById(ctx, params.ArtifactId)
}

func (s *Service) SetArtifactTxHash(ctx context.Context, artifactId, txHash string) error {
	result, err := s.db.ExecContext(ctx, querySetArtifactTxHash, txHash, artifactId)
	if err != nil {
		zap.L().Error("Failed to store artifact tx hash", zap.String("artifact_id", artifactId), zap.Error(err))
		return fmt.Errorf("unable to store artifact tx hash: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("artifact %s: %w", artifactId, store.ErrNotFound)
	}
	return nil
}

func (s *Service) DeleteArtifact(ctx context.Context, artifactId string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteArtifact, artifactId)
	if err != nil {
		zap.L().Error("Failed to delete artifact", zap.String("artifact_id", artifactId), zap.Error(err))
		return fmt.Errorf("unable to delete artifact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("artifact %s: %w", artifactId, store.ErrNotFound)
	}

	zap.L().Info("Artifact deleted", zap.String("artifact_id", artifactId))
	return nil
}

// scanArtifactDest returns scan destinations in column order. Nullable text
// columns go through sql.NullString wrappers handled by the caller via
// pointers to the struct fields, so empty strings stand in for NULL.
func scanArtifactDest(a *models.Artifact) []interface{} {
	return []interface{}{
		&a.Id, &a.AuthorId, &a.CreatorName, &a.Title,
		&nullStr{&a.Category}, &nullStr{&a.Description}, &nullStr{&a.Meaning},
		&a.MediaRef, &nullStr{&a.Address},
		&a.Status, &a.Verified,
		&nullStr{&a.CertificateRef}, &nullStr{&a.LicenseRef}, &nullStr{&a.LedgerTxHash},
		&a.CreatedAt, &a.UpdatedAt,
	}
}

// nullStr scans a nullable TEXT column into a plain string field.
type nullStr struct {
	dest *string
}

func (n *nullStr) Scan(value interface{}) error {
	var ns sql.NullString
	if err := ns.Scan(value); err != nil {
		return err
	}
	*n.dest = ns.String
	return nil
}

func collectArtifacts(rows *sql.Rows) ([]models.Artifact, error) {
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var artifacts []models.Artifact
	for rows.Next() {
		var artifact models.Artifact
		if err := rows.Scan(scanArtifactDest(&artifact)...); err != nil {
			zap.L().Error("Failed to scan artifact row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan artifact row: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during artifact row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating artifact rows: %w", err)
	}

	return artifacts, nil
}
