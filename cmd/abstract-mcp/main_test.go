package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/config"
	"github.com/rovshanmuradov/abstract-mcp/internal/utils/metrics"
)

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig("", "sse", true)
	require.NoError(t, err)
	assert.Equal(t, config.TransportSSE, cfg.Transport)
	assert.True(t, cfg.DebugLogging)
	assert.Equal(t, config.DefaultRPCURL, cfg.Chain.RPCURL)
}

func TestLoadConfigRejectsUnknownTransport(t *testing.T) {
	_, err := loadConfig("", "carrier-pigeon", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chain": {"rpc_url": "https://api.testnet.abs.xyz", "chain_id": 11124}}`), 0o600))

	cfg, err := loadConfig(path, "", false)
	require.NoError(t, err)
	assert.Equal(t, "https://api.testnet.abs.xyz", cfg.Chain.RPCURL)
	assert.Equal(t, int64(11124), cfg.Chain.ChainID)
	assert.Equal(t, config.TransportStdio, cfg.Transport)
}

func TestBuildServerRegistersAllTools(t *testing.T) {
	srv, err := buildServer(config.Default(), metrics.NewCollector(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"getBlockInfo", "getTokenInfo", "getTokenSupply", "getTransactionData", "getWalletBalance",
	}, srv.Registry().List())
}
