// internal/blockchain/evm/client.go
package evm

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
	"github.com/rovshanmuradov/abstract-mcp/internal/utils/metrics"
)

// Client is a thin adapter over go-ethereum for read-only queries.
type Client struct {
	rpc     *rpc.Client
	eth     *ethclient.Client
	retry   RetryPolicy
	metrics *metrics.Collector
	logger  *zap.Logger
}

func newClient(rpcClient *rpc.Client, policy RetryPolicy, collector *metrics.Collector, logger *zap.Logger) *Client {
	return &Client{
		rpc:     rpcClient,
		eth:     ethclient.NewClient(rpcClient),
		retry:   policy,
		metrics: collector,
		logger:  logger,
	}
}

func instrument[T any](ctx context.Context, c *Client, method string, op func() (T, error)) (T, error) {
	start := time.Now()
	res, err := retry(ctx, c.retry, c.logger, method, op)
	c.metrics.RecordRPCLatency(method, time.Since(start), err)
	if err != nil {
		c.logger.Debug("RPC request failed", zap.String("method", method), zap.Error(err))
	}
	return res, err
}

// BalanceAt returns the native balance of account at the latest block.
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return instrument(ctx, c, "eth_getBalance", func() (*big.Int, error) {
		return c.eth.BalanceAt(ctx, account, nil)
	})
}

// CallContract executes a read-only call at the latest block.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return instrument(ctx, c, "eth_call", func() ([]byte, error) {
		return c.eth.CallContract(ctx, msg, nil)
	})
}

// TransactionReceipt fetches the receipt through the raw RPC method rather than ethclient,
// which would reject unknown transaction types and drops from/to.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*blockchain.Receipt, error) {
	return instrument(ctx, c, "eth_getTransactionReceipt", func() (*blockchain.Receipt, error) {
		var receipt *blockchain.Receipt
		if err := c.rpc.CallContext(ctx, &receipt, "eth_getTransactionReceipt", txHash); err != nil {
			return nil, err
		}
		return receipt, nil
	})
}

// BlockByHash fetches a block with transaction hashes only. The hash is forwarded verbatim;
// the node validates it.
func (c *Client) BlockByHash(ctx context.Context, blockHash string) (*blockchain.Block, error) {
	return instrument(ctx, c, "eth_getBlockByHash", func() (*blockchain.Block, error) {
		var block *blockchain.Block
		if err := c.rpc.CallContext(ctx, &block, "eth_getBlockByHash", blockHash, false); err != nil {
			return nil, err
		}
		return block, nil
	})
}

// Close releases the underlying transport.
func (c *Client) Close() {
	c.rpc.Close()
}

var _ blockchain.Client = (*Client)(nil)
