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
	"net"
	"os"
	"os/signal"
	"syscall"

	"chainart-registry-go/internal/api"
	"chainart-registry-go/internal/approval"
	"chainart-registry-go/internal/common"
	"chainart-registry-go/internal/config"
	"chainart-registry-go/internal/watcher"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting ChainArt registry server")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	orchestrator := approval.NewOrchestrator(services.DbService, services.Gateway, cfg.Ledger.SubmitTimeout)

	// The server embeds its own reconciliation watcher, so a single process
	// both accepts promotions and converges them.
	w := watcher.NewWatcher(services.DbService, services.Gateway, cfg.Watcher)
	if err := w.Start(ctx); err != nil {
		zap.L().Fatal("Failed to start watcher", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	api.RegisterMiddlewares(app, cfg.Server.RequestTimeout)
	api.RegisterRoutes(app, api.RouteConfig{
		Health:    api.NewHealthHandler(services.DbService),
		Profiles:  api.NewProfilesHandler(services.DbService),
		Artifacts: api.NewArtifactsHandler(services.DbService, orchestrator),
		Approval:  api.NewApprovalHandler(orchestrator),
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	go func() {
		zap.L().Info("HTTP server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			zap.L().Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zap.L().Info("Shutdown signal received", zap.String("signal", sig.String()))

	if err := app.Shutdown(); err != nil {
		zap.L().Warn("HTTP server shutdown failed", zap.Error(err))
	}
	w.Stop()

	zap.L().Info("ChainArt registry server stopped")
}
