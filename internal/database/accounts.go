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
	"strings"

	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) CreateAccount(ctx context.Context, params store.CreateAccountParams) (*models.Account, error) {
	role := params.Role
	if role == "" {
		role = models.RoleUser
	}
	accountId := uuid.New().String()

	zap.L().Info("Creating account",
		zap.String("id", accountId),
		zap.String("username", params.Username),
		zap.String("wallet_address", params.WalletAddress),
		zap.String("role", role))

	_, err := s.db.ExecContext(ctx, queryInsertAccount,
		accountId, params.WalletAddress, params.Username, params.Contact, role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("account with this wallet, username or contact already exists: %w", store.ErrDuplicate)
		}
		zap.L().Error("Failed to insert account", zap.String("username", params.Username), zap.Error(err))
		return nil, fmt.Errorf("unable to insert account: %w", err)
	}

	return s.GetAccountById(ctx, accountId)
}

func (s *Service) GetAccountById(ctx context.Context, accountId string) (*models.Account, error) {
	zap.L().Debug("Querying account by ID", zap.String("account_id", accountId))

	var account models.Account
	err := s.db.QueryRowContext(ctx, queryGetAccountById, accountId).Scan(
		&account.Id, &account.WalletAddress, &account.Username, &account.Contact,
		&account.Role, &account.ApprovalRequested, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountId, store.ErrNotFound)
		}
		zap.L().Error("Failed to query account by ID", zap.String("account_id", accountId), zap.Error(err))
		return nil, fmt.Errorf("unable to query account by ID: %w", err)
	}

	return &account, nil
}

func (s *Service) GetAccountByWallet(ctx context.Context, walletAddress string) (*models.Account, error) {
	zap.L().Debug("Querying account by wallet", zap.String("wallet_address", walletAddress))

	var account models.Account
	err := s.db.QueryRowContext(ctx, queryGetAccountByWallet, walletAddress).Scan(
		&account.Id, &account.WalletAddress, &account.Username, &account.Contact,
		&account.Role, &account.ApprovalRequested, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account for wallet %s: %w", walletAddress, store.ErrNotFound)
		}
		zap.L().Error("Failed to query account by wallet", zap.String("wallet_address", walletAddress), zap.Error(err))
		return nil, fmt.Errorf("unable to query account by wallet: %w", err)
	}

	return &account, nil
}

func (s *Service) GetAccounts(ctx context.Context) ([]models.Account, error) {
	zap.L().Debug("Querying all accounts")

	rows, err := s.db.QueryContext(ctx, queryGetAccounts)
	if err != nil {
		zap.L().Error("Failed to query accounts", zap.Error(err))
		return nil, fmt.Errorf("unable to query accounts: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(&account.Id, &account.WalletAddress, &account.Username, &account.Contact,
			&account.Role, &account.ApprovalRequested, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			zap.L().Error("Failed to scan account row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan account row: %w", err)
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during account row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

func (s *Service) UpdateAccount(ctx context.Context, accountId string, params store.UpdateAccountParams) (*models.Account, error) {
	setClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if params.WalletAddress != nil {
		setClauses = append(setClauses, "wallet_address = ?")
		args = append(args, *params.WalletAddress)
	}
	if params.Username != nil {
		setClauses = append(setClauses, "username = ?")
		args = append(args, *params.Username)
	}
	if params.Contact != nil {
		setClauses = append(setClauses, "contact = ?")
		args = append(args, *params.Contact)
	}
	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, accountId)
	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = ?", strings.Join(setClauses, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("wallet, username or contact already used by another account: %w", store.ErrDuplicate)
		}
		zap.L().Error("Failed to update account", zap.String("account_id", accountId), zap.Error(err))
		return nil, fmt.Errorf("unable to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("account %s: %w", accountId, store.ErrNotFound)
	}

	return s.GetAccountById(ctx, accountId)
}

func (s *Service) MarkApprovalRequested(ctx context.Context, accountId string) error {
	result, err := s.db.ExecContext(ctx, queryMarkApprovalRequested, accountId)
	if err != nil {
		zap.L().Error("Failed to mark approval requested", zap.String("account_id", accountId), zap.Error(err))
		return fmt.Errorf("unable to mark approval requested: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %s: %w", accountId, store.ErrNotFound)
	}
	return nil
}

func (s *Service) PromoteCreatorsByWallet(ctx context.Context, walletAddress string) (int64, error) {
	result, err := s.db.ExecContext(ctx, queryPromoteCreatorsByWallet, walletAddress)
	if err != nil {
		zap.L().Error("Failed to promote accounts by wallet", zap.String("wallet_address", walletAddress), zap.Error(err))
		return 0, fmt.Errorf("unable to promote accounts by wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unable to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		zap.L().Info("Promoted accounts to CREATOR",
			zap.String("wallet_address", walletAddress),
			zap.Int64("rows", rowsAffected))
	}
	return rowsAffected, nil
}
