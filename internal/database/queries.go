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

const (
	// Account queries
	queryInsertAccount = `
		INSERT INTO accounts (id, wallet_address, username, contact, role)
		VALUES (?, ?, ?, ?, ?)`

	queryGetAccountById = `
		SELECT id, wallet_address, username, contact, role, approval_requested, created_at, updated_at
		FROM accounts
		WHERE id = ?`

	queryGetAccountByWallet = `
		SELECT id, wallet_address, username, contact, role, approval_requested, created_at, updated_at
		FROM accounts
		WHERE LOWER(wallet_address) = LOWER(?)`

	queryGetAccounts = `
		SELECT id, wallet_address, username, contact, role, approval_requested, created_at, updated_at
		FROM accounts
		ORDER BY created_at`

	queryMarkApprovalRequested = `
		UPDATE accounts
		SET approval_requested = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	queryPromoteCreatorsByWallet = `
		UPDATE accounts
		SET role = 'CREATOR', approval_requested = 1, updated_at = CURRENT_TIMESTAMP
		WHERE LOWER(wallet_address) = LOWER(?)`

	// Artifact queries
	queryInsertArtifact = `
		INSERT INTO artifacts (id, author_id, creator_name, title, category, description, meaning, media_ref, address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetArtifactById = `
		SELECT id, author_id, creator_name, title, category, description, meaning, media_ref, address,
		       status, verified, certificate_ref, license_ref, ledger_tx_hash, created_at, updated_at
		FROM artifacts
		WHERE id = ?`

	queryListArtifactsByAuthor = `
		SELECT id, author_id, creator_name, title, category, description, meaning, media_ref, address,
		       status, verified, certificate_ref, license_ref, ledger_tx_hash, created_at, updated_at
		FROM artifacts
		WHERE author_id = ?
		ORDER BY created_at DESC`

	queryListArtifactsByStatus = `
		SELECT id, author_id, creator_name, title, category, description, meaning, media_ref, address,
		       status, verified, certificate_ref, license_ref, ledger_tx_hash, created_at, updated_at
		FROM artifacts
		WHERE status = ?
		ORDER BY created_at DESC`

	querySearchApprovedArtifacts = `
		SELECT id, author_id, creator_name, title, category, description, meaning, media_ref, address,
		       status, verified, certificate_ref, license_ref, ledger_tx_hash, created_at, updated_at
		FROM artifacts
		WHERE status = 'APPROVED' AND title LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY created_at DESC`

	queryApproveArtifact = `
		UPDATE artifacts
		SET verified = 1, status = 'APPROVED', certificate_ref = ?, license_ref = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND verified = 0`

	querySetArtifactTxHash = `
		UPDATE artifacts
		SET ledger_tx_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	queryDeleteArtifact = `
		DELETE FROM artifacts WHERE id = ?`
)
