// internal/blockchain/evm/connector.go
package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
	"github.com/rovshanmuradov/abstract-mcp/internal/config"
	"github.com/rovshanmuradov/abstract-mcp/internal/utils/metrics"
)

// Connector dials a fresh handle for every call. Handles share no state, so concurrent
// invocations never observe each other.
type Connector struct {
	network string
	url     string
	retry   RetryPolicy
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewConnector creates a connector for the configured chain.
func NewConnector(chain config.ChainConfig, policy RetryPolicy, collector *metrics.Collector, logger *zap.Logger) *Connector {
	return &Connector{
		network: chain.Name,
		url:     chain.RPCURL,
		retry:   policy,
		metrics: collector,
		logger:  logger.Named("evm-connector"),
	}
}

// Handle constructs a new chain handle. For HTTP endpoints this performs no network I/O.
func (c *Connector) Handle(ctx context.Context) (blockchain.Client, error) {
	rpcClient, err := rpc.DialContext(ctx, c.url)
	if err != nil {
		c.logger.Error("Failed to construct chain handle", zap.String("url", c.url), zap.Error(err))
		return nil, &blockchain.ConnectionError{Network: c.network, URL: c.url, Err: err}
	}
	return newClient(rpcClient, c.retry, c.metrics, c.logger), nil
}

var _ blockchain.Connector = (*Connector)(nil)
