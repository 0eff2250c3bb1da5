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
	"regexp"
	"strings"

	"chainart-registry-go/internal/common"
	"chainart-registry-go/internal/config"
	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"

	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateContact(contact string) error {
	if contact == "" {
		return fmt.Errorf("contact cannot be empty")
	}
	if !emailRegex.MatchString(contact) {
		return fmt.Errorf("invalid contact email format: %s", contact)
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) < 2 {
		return fmt.Errorf("username must be at least 2 characters")
	}
	return nil
}

func validateRole(role string) error {
	switch role {
	case models.RoleUser, models.RoleAdmin:
		return nil
	case models.RoleCreator:
		return fmt.Errorf("CREATOR cannot be assigned directly; use the promotion workflow")
	default:
		return fmt.Errorf("unknown role %q (valid: USER, ADMIN)", role)
	}
}

func main() {
	wallet := flag.String("wallet", "", "Wallet address (42-character 0x-prefixed hex, required)")
	username := flag.String("username", "", "Unique username (required)")
	contact := flag.String("contact", "", "Contact email (required)")
	role := flag.String("role", models.RoleUser, "Account role: USER or ADMIN")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	*wallet = strings.TrimSpace(*wallet)
	*username = strings.TrimSpace(*username)
	*contact = strings.TrimSpace(*contact)
	*role = strings.ToUpper(strings.TrimSpace(*role))

	if !ledger.IsCanonicalAddress(*wallet) {
		zap.L().Fatal("Invalid wallet address", zap.String("wallet", *wallet))
	}
	if err := validateUsername(*username); err != nil {
		zap.L().Fatal("Invalid username", zap.Error(err))
	}
	if err := validateContact(*contact); err != nil {
		zap.L().Fatal("Invalid contact", zap.Error(err))
	}
	if err := validateRole(*role); err != nil {
		zap.L().Fatal("Invalid role", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	account, err := dbService.CreateAccount(ctx, store.CreateAccountParams{
		WalletAddress: *wallet,
		Username:      *username,
		Contact:       *contact,
		Role:          *role,
	})
	if err != nil {
		zap.L().Fatal("Failed to create account", zap.Error(err))
	}

	common.PrintHeader("Account created", common.DefaultWidth)
	fmt.Printf("ID:      %s\n", account.Id)
	fmt.Printf("Wallet:  %s\n", account.WalletAddress)
	fmt.Printf("User:    %s\n", account.Username)
	fmt.Printf("Contact: %s\n", account.Contact)
	fmt.Printf("Role:    %s\n", account.Role)
	common.PrintFooter("Done", common.DefaultWidth)
}
