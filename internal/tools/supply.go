// internal/tools/supply.go
package tools

import (
	"context"
	"fmt"

	"github.com/rovshanmuradov/abstract-mcp/internal/token"
)

// TokenSupply reports the total supply of an ERC20 token.
func (s *Service) TokenSupply(ctx context.Context, tokenAddress string) (*SupplyReport, error) {
	d, err := s.readSupply(ctx, NameGetTokenSupply, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get token supply: %w", err)
	}
	return supplyReport(tokenAddress, d), nil
}

// TokenInfo is TokenSupply plus network and display metadata.
func (s *Service) TokenInfo(ctx context.Context, tokenAddress string) (*TokenInfoReport, error) {
	d, err := s.readSupply(ctx, NameGetTokenInfo, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get token information: %w", err)
	}

	return &TokenInfoReport{
		SupplyReport: *supplyReport(tokenAddress, d),
		Network: NetworkInfo{
			Name:    s.chain.Name,
			ChainID: s.chain.ChainID,
		},
		Metadata: TokenMetadata{
			FormattedSupply: token.FormatLocale(d.Formatted) + " " + d.Symbol,
			TokenType:       tokenTypeERC20,
			Timestamp:       s.timestamp(),
		},
	}, nil
}

func (s *Service) readSupply(ctx context.Context, operation, tokenAddress string) (*token.Descriptor, error) {
	client, _, done, err := s.begin(ctx, operation)
	if err != nil {
		return nil, err
	}
	defer done()

	return s.reader.Read(ctx, client, tokenAddress, token.Options{TotalSupply: true})
}

func supplyReport(tokenAddress string, d *token.Descriptor) *SupplyReport {
	return &SupplyReport{
		TokenAddress:   tokenAddress,
		TokenName:      d.Name,
		Symbol:         d.Symbol,
		Decimals:       d.Decimals,
		TotalSupply:    d.Formatted,
		RawTotalSupply: d.RawString(),
	}
}
