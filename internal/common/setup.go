package common

import (
	"context"
	"log"
	"strings"

	"chainart-registry-go/internal/database"
	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService *database.Service
	Gateway   ledger.Gateway
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Loading contract deployment", zap.String("file", cfg.Ledger.ContractFile))
	deployment, err := ledger.LoadContractDeployment(cfg.Ledger.ContractFile)
	if err != nil {
		dbService.Close()
		return nil, err
	}

	gateway, err := ledger.NewEvmGateway(cfg.Ledger, deployment)
	if err != nil {
		dbService.Close()
		return nil, err
	}
	zap.L().Info("Connected to registry contract",
		zap.String("address", deployment.Address),
		zap.Int64("chain_id", deployment.ChainId))

	return &Services{
		DbService: dbService,
		Gateway:   gateway,
	}, nil
}

// InitializeDatabaseOnly initializes just the database service without the
// ledger client. Useful for local-only operations like listing accounts.
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.Gateway != nil {
		cs.Gateway.Close()
	}
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
