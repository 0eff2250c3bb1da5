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

package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"chainart-registry-go/internal/models"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"
)

// Compile-time check: *EvmGateway must satisfy Gateway.
var _ Gateway = (*EvmGateway)(nil)

// EvmGateway talks to the registry contract through go-ethereum. Write calls
// and views go over the HTTP RPC endpoint; the event subscription requires a
// websocket endpoint.
type EvmGateway struct {
	writeClient   *ethclient.Client
	watchClient   *ethclient.Client
	contract      *bind.BoundContract
	watchContract *bind.BoundContract
	key           *ecdsa.PrivateKey
	chainId       *big.Int
	address       common.Address
}

// creatorSignedLog mirrors the CreatorSigned event inputs for log unpacking.
type creatorSignedLog struct {
	Creator common.Address
}

func NewEvmGateway(cfg models.LedgerConfig, deployment *ContractDeployment) (*EvmGateway, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("ledger RPC URL cannot be empty")
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("ledger signing key cannot be empty")
	}

	parsedABI, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("unable to parse registry ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("unable to parse ledger signing key: %w", err)
	}

	zap.L().Info("Connecting to ledger RPC", zap.String("url", cfg.RPCURL))
	writeClient, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("unable to dial ledger RPC: %w", err)
	}

	watchClient := writeClient
	if cfg.WSURL != "" && cfg.WSURL != cfg.RPCURL {
		zap.L().Info("Connecting to ledger websocket", zap.String("url", cfg.WSURL))
		watchClient, err = ethclient.Dial(cfg.WSURL)
		if err != nil {
			writeClient.Close()
			return nil, fmt.Errorf("unable to dial ledger websocket: %w", err)
		}
	}

	address := common.HexToAddress(deployment.Address)
	gateway := &EvmGateway{
		writeClient:   writeClient,
		watchClient:   watchClient,
		contract:      bind.NewBoundContract(address, parsedABI, writeClient, writeClient, writeClient),
		watchContract: bind.NewBoundContract(address, parsedABI, watchClient, watchClient, watchClient),
		key:           key,
		chainId:       big.NewInt(deployment.ChainId),
		address:       address,
	}

	zap.L().Info("Ledger gateway initialized",
		zap.String("contract", deployment.Address),
		zap.Int64("chain_id", deployment.ChainId))
	return gateway, nil
}

func (e *EvmGateway) Close() {
	if e.watchClient != e.writeClient {
		e.watchClient.Close()
	}
	e.writeClient.Close()
}

// transact submits one write call and returns the transaction hash. The hash
// only proves submission acknowledgement, never confirmation.
func (e *EvmGateway) transact(ctx context.Context, method string, args ...interface{}) (string, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(e.key, e.chainId)
	if err != nil {
		return "", fmt.Errorf("unable to build transactor: %w", err)
	}
	opts.Context = ctx

	tx, err := e.contract.Transact(opts, method, args...)
	if err != nil {
		return "", fmt.Errorf("%s submission failed: %w", method, err)
	}

	zap.L().Info("Ledger call submitted",
		zap.String("method", method),
		zap.String("tx_hash", tx.Hash().Hex()))
	return tx.Hash().Hex(), nil
}

func (e *EvmGateway) SignCreator(ctx context.Context, walletAddress, displayName string) (string, error) {
	return e.transact(ctx, "signCreator", common.HexToAddress(walletAddress), displayName)
}

func (e *EvmGateway) RecordArtifact(ctx context.Context, walletAddress, title, description, mediaRef string) (string, error) {
	return e.transact(ctx, "recordArtifact", common.HexToAddress(walletAddress), title, description, mediaRef)
}

func (e *EvmGateway) CreatorSigned(ctx context.Context, walletAddress string) (*models.LedgerCreator, error) {
	var out []interface{}
	err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, "creators", common.HexToAddress(walletAddress))
	if err != nil {
		return nil, fmt.Errorf("creators view call failed: %w", err)
	}

	return &models.LedgerCreator{
		Name:   *abi.ConvertType(out[0], new(string)).(*string),
		Signed: *abi.ConvertType(out[1], new(bool)).(*bool),
	}, nil
}

func (e *EvmGateway) WatchCreatorSigned(ctx context.Context, sink chan<- models.CreatorSignedEvent) (Subscription, error) {
	logs, sub, err := e.watchContract.WatchLogs(&bind.WatchOpts{Context: ctx}, eventCreatorSigned)
	if err != nil {
		return nil, fmt.Errorf("unable to subscribe to %s: %w", eventCreatorSigned, err)
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case lg := <-logs:
				var decoded creatorSignedLog
				if err := e.watchContract.UnpackLog(&decoded, eventCreatorSigned, lg); err != nil {
					return fmt.Errorf("unable to unpack %s log: %w", eventCreatorSigned, err)
				}
				ev := models.CreatorSignedEvent{
					WalletAddress: decoded.Creator.Hex(),
					TxHash:        lg.TxHash.Hex(),
					BlockNumber:   lg.BlockNumber,
				}
				select {
				case sink <- ev:
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}
