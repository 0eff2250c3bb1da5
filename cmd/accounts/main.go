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

package main

import (
	"context"
	"flag"
	"fmt"

	"chainart-registry-go/internal/common"
	"chainart-registry-go/internal/config"
	"chainart-registry-go/internal/database"
	"chainart-registry-go/internal/models"

	"go.uber.org/zap"
)

type reportStats struct {
	totalAccounts     int
	totalArtifacts    int
	approvedArtifacts int
	creators          int
}

func formatTxHash(txHash string) string {
	if txHash == "" {
		return "none"
	}
	if len(txHash) > 10 {
		return txHash[:10] + "..."
	}
	return txHash
}

func printArtifact(artifact models.Artifact, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	fmt.Printf("%s %-30s %-10s tx: %-13s created: %s\n",
		symbol,
		artifact.Title,
		artifact.Status,
		formatTxHash(artifact.LedgerTxHash),
		artifact.CreatedAt.Format("2006-01-02 15:04:05"))
	if artifact.CertificateRef != "" {
		fmt.Printf("%s   certificate: %s, license: %s\n",
			common.BoxDetailPrefix(isLast), artifact.CertificateRef, artifact.LicenseRef)
	}
}

func printAccountHeader(account models.Account, artifactCount int) {
	fmt.Printf("\n┌─ %s [%s] (%s)\n", account.Username, account.Role, account.Contact)
	fmt.Printf("│  ID: %s\n", account.Id)
	fmt.Printf("│  Wallet: %s\n", account.WalletAddress)
	fmt.Printf("│  Artifacts: %d\n", artifactCount)
	common.PrintBoxSeparator(78)
}

func processAccount(ctx context.Context, account models.Account, dbService *database.Service, stats *reportStats) error {
	artifacts, err := dbService.ListArtifactsByAuthor(ctx, account.Id)
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}

	printAccountHeader(account, len(artifacts))
	for i, artifact := range artifacts {
		printArtifact(artifact, i == len(artifacts)-1)
		stats.totalArtifacts++
		if artifact.Status == models.StatusApproved {
			stats.approvedArtifacts++
		}
	}
	return nil
}

func main() {
	flag.Parse()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	accounts, err := dbService.GetAccounts(ctx)
	if err != nil {
		logger.Fatal("Failed to list accounts", zap.Error(err))
	}

	common.PrintHeader("ChainArt Registry Accounts Report", common.DefaultWidth)

	stats := reportStats{}
	for _, account := range accounts {
		stats.totalAccounts++
		if account.Role == models.RoleCreator {
			stats.creators++
		}
		if err := processAccount(ctx, account, dbService, &stats); err != nil {
			logger.Error("Failed to process account",
				zap.String("account_id", account.Id),
				zap.String("username", account.Username),
				zap.Error(err))
		}
	}

	summary := fmt.Sprintf("Accounts: %d (creators: %d)  Artifacts: %d (approved: %d)",
		stats.totalAccounts, stats.creators, stats.totalArtifacts, stats.approvedArtifacts)
	common.PrintFooter(summary, common.DefaultWidth)
}
