// internal/tools/wallet.go
package tools

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
	"github.com/rovshanmuradov/abstract-mcp/internal/token"
)

// WalletBalance reports the native balance of an address and its balances of the given tokens.
// A token that cannot be read is logged and left out; it never fails the whole query.
// Zero balances are dropped unless IncludeZeroBalances is set.
func (s *Service) WalletBalance(ctx context.Context, req WalletBalanceRequest) (*BalanceReport, error) {
	report, err := s.walletBalance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet balances: %w", err)
	}
	return report, nil
}

func (s *Service) walletBalance(ctx context.Context, req WalletBalanceRequest) (*BalanceReport, error) {
	client, log, done, err := s.begin(ctx, NameGetWalletBalance)
	if err != nil {
		return nil, err
	}
	defer done()

	if !common.IsHexAddress(req.Address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, req.Address)
	}
	account := common.HexToAddress(req.Address)

	callCtx, cancel := s.withDeadline(ctx)
	native, err := client.BalanceAt(callCtx, account)
	cancel()
	if err != nil {
		return nil, err
	}

	tokens := s.tokenBalances(ctx, client, log, account, req)

	return &BalanceReport{
		Address: req.Address,
		NativeToken: NativeBalance{
			Symbol:     s.chain.NativeToken.Symbol,
			Balance:    token.FormatUnits(native, s.chain.NativeToken.Decimals),
			RawBalance: native.String(),
		},
		Tokens:     tokens,
		TokenCount: len(tokens),
		Network:    s.chain.Name,
		ChainID:    s.chain.ChainID,
		Timestamp:  s.timestamp(),
	}, nil
}

// tokenBalances looks tokens up concurrently and keeps the caller's order.
func (s *Service) tokenBalances(
	ctx context.Context,
	client blockchain.Client,
	log *zap.Logger,
	account common.Address,
	req WalletBalanceRequest,
) []TokenBalance {
	results := make([]*TokenBalance, len(req.TokenAddresses))

	var g errgroup.Group
	g.SetLimit(s.tokenWorkers)
	for i, tokenAddr := range req.TokenAddresses {
		g.Go(func() error {
			d, err := s.reader.Read(ctx, client, tokenAddr, token.Options{BalanceOf: &account})
			if err != nil {
				log.Warn("Error fetching token details", zap.String("token", tokenAddr), zap.Error(err))
				return nil
			}
			if !req.IncludeZeroBalances && !d.NonZero {
				return nil
			}
			results[i] = &TokenBalance{
				TokenAddress: tokenAddr,
				Symbol:       d.Symbol,
				Name:         d.Name,
				Decimals:     d.Decimals,
				Balance:      d.Formatted,
				RawBalance:   d.RawString(),
				HasBalance:   d.NonZero,
			}
			return nil
		})
	}
	_ = g.Wait()

	tokens := make([]TokenBalance, 0, len(results))
	for _, tb := range results {
		if tb != nil {
			tokens = append(tokens, *tb)
		}
	}
	return tokens
}
