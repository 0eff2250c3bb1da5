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
	"os"
	"os/signal"
	"syscall"

	"chainart-registry-go/internal/common"
	"chainart-registry-go/internal/config"
	"chainart-registry-go/internal/watcher"

	"go.uber.org/zap"
)

// Standalone reconciliation watcher. Runs the same convergence loop the
// server embeds, for deployments that separate the HTTP boundary from the
// event consumer.
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

	zap.L().Info("Starting ChainArt reconciliation watcher")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	w := watcher.NewWatcher(services.DbService, services.Gateway, cfg.Watcher)
	if err := w.Start(ctx); err != nil {
		zap.L().Fatal("Failed to start watcher", zap.Error(err))
	}

	zap.L().Info("Watcher running, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zap.L().Info("Shutdown signal received", zap.String("signal", sig.String()))

	w.Stop()
}
