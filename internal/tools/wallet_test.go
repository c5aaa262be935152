package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletBalanceNativeOnly(t *testing.T) {
	node, svc := newTestService(t)

	report, err := svc.WalletBalance(context.Background(), WalletBalanceRequest{Address: wallet.Hex()})
	require.NoError(t, err)

	assert.Equal(t, wallet.Hex(), report.Address)
	assert.Equal(t, NativeBalance{Symbol: "ETH", Balance: "1.5", RawBalance: "1500000000000000000"}, report.NativeToken)
	assert.NotNil(t, report.Tokens)
	assert.Empty(t, report.Tokens)
	assert.Equal(t, 0, report.TokenCount)
	assert.Equal(t, "Abstract Chain", report.Network)
	assert.Equal(t, int64(2741), report.ChainID)
	assert.Equal(t, "2025-03-14T09:26:53.589Z", report.Timestamp)

	assert.Equal(t, 1, node.Calls("eth_getBalance"))
	assert.Equal(t, 0, node.Calls("eth_call"))
}

func TestWalletBalanceFiltersZeroBalances(t *testing.T) {
	_, svc := newTestService(t)
	req := WalletBalanceRequest{
		Address:        wallet.Hex(),
		TokenAddresses: []string{usdcAddr.Hex(), wethAddr.Hex()},
	}

	report, err := svc.WalletBalance(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, report.Tokens, 1)
	assert.Equal(t, 1, report.TokenCount)
	assert.Equal(t, TokenBalance{
		TokenAddress: usdcAddr.Hex(),
		Symbol:       "USDC",
		Name:         "USD Coin",
		Decimals:     6,
		Balance:      "42.0",
		RawBalance:   "42000000",
		HasBalance:   true,
	}, report.Tokens[0])

	req.IncludeZeroBalances = true
	report, err = svc.WalletBalance(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, report.Tokens, 2)
	assert.Equal(t, usdcAddr.Hex(), report.Tokens[0].TokenAddress)
	assert.Equal(t, wethAddr.Hex(), report.Tokens[1].TokenAddress)
	assert.False(t, report.Tokens[1].HasBalance)
	assert.Equal(t, "0.0", report.Tokens[1].Balance)
	assert.Equal(t, "0", report.Tokens[1].RawBalance)
}

func TestWalletBalanceSkipsFailingTokens(t *testing.T) {
	_, svc := newTestService(t)
	req := WalletBalanceRequest{
		Address:             wallet.Hex(),
		TokenAddresses:      []string{emptyAddr.Hex(), usdcAddr.Hex(), "not-an-address", wethAddr.Hex()},
		IncludeZeroBalances: true,
	}

	report, err := svc.WalletBalance(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, report.Tokens, 2)
	assert.Equal(t, 2, report.TokenCount)
	assert.Equal(t, "USDC", report.Tokens[0].Symbol)
	assert.Equal(t, "WETH", report.Tokens[1].Symbol)
}

func TestWalletBalanceInvalidAddress(t *testing.T) {
	node, svc := newTestService(t)

	_, err := svc.WalletBalance(context.Background(), WalletBalanceRequest{Address: "0xnope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Contains(t, err.Error(), "failed to get wallet balances:")
	assert.Equal(t, 0, node.TotalCalls())
}
