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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"chainart-registry-go/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	requestTimeout, err := getEnvDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	submitTimeout, err := getEnvDuration("LEDGER_SUBMIT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	resubscribeDelay, err := getEnvDuration("WATCHER_RESUBSCRIBE_DELAY", 5*time.Second)
	if err != nil {
		return nil, err
	}

	// The private key is only validated when the ledger gateway is built,
	// so database-only tools run without it.
	return &models.Config{
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "registry.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
			SeedAdmin:       getEnvBool("SEED_ADMIN", false),
		},
		Server: models.ServerConfig{
			Host:           getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvString("SERVER_PORT", "8080"),
			RequestTimeout: requestTimeout,
		},
		Ledger: models.LedgerConfig{
			RPCURL:        getEnvString("LEDGER_RPC_URL", "http://localhost:8545"),
			WSURL:         getEnvString("LEDGER_WS_URL", ""),
			PrivateKey:    os.Getenv("LEDGER_PRIVATE_KEY"),
			ContractFile:  getEnvString("LEDGER_CONTRACT_FILE", "contract.yaml"),
			SubmitTimeout: submitTimeout,
		},
		Watcher: models.WatcherConfig{
			EventBuffer:      getEnvInt("WATCHER_EVENT_BUFFER", 64),
			ResubscribeDelay: resubscribeDelay,
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
