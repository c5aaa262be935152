// internal/mcpserver/definitions.go
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rovshanmuradov/abstract-mcp/internal/tools"
)

// Queries is the tool surface the server dispatches to. *tools.Service implements it.
type Queries interface {
	WalletBalance(ctx context.Context, req tools.WalletBalanceRequest) (*tools.BalanceReport, error)
	TokenSupply(ctx context.Context, tokenAddress string) (*tools.SupplyReport, error)
	TokenInfo(ctx context.Context, tokenAddress string) (*tools.TokenInfoReport, error)
	TransactionData(ctx context.Context, txHash string) (tools.Payload, error)
	BlockInfo(ctx context.Context, blockHash string) (tools.Payload, error)
}

var _ Queries = (*tools.Service)(nil)

// handlerFunc returns the value rendered as the tool's text content.
type handlerFunc func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error)

type toolSpec struct {
	definition mcp.Tool
	handler    handlerFunc
}

func toolSpecs(q Queries) []toolSpec {
	return []toolSpec{
		{
			definition: mcp.NewTool(tools.NameGetWalletBalance,
				mcp.WithDescription("Get balance of native token and specified token addresses for a wallet"),
				mcp.WithString("address", mcp.Required(), mcp.Description("Wallet address to check balances for")),
				mcp.WithArray("tokenAddresses",
					mcp.Description("Optional list of token addresses to check balances for"),
					mcp.WithStringItems(),
				),
				mcp.WithBoolean("includeZeroBalances",
					mcp.Description("Whether to include tokens with zero balance"),
					mcp.DefaultBool(false),
				),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			handler: func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
				address, err := request.RequireString("address")
				if err != nil {
					return nil, err
				}
				return q.WalletBalance(ctx, tools.WalletBalanceRequest{
					Address:             address,
					TokenAddresses:      request.GetStringSlice("tokenAddresses", nil),
					IncludeZeroBalances: request.GetBool("includeZeroBalances", false),
				})
			},
		},
		{
			definition: mcp.NewTool(tools.NameGetTokenSupply,
				mcp.WithDescription("Get total supply for an ERC20 token on Abstract Chain"),
				mcp.WithString("tokenAddress", mcp.Required(), mcp.Description("ERC20 token contract address")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			handler: func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
				tokenAddress, err := request.RequireString("tokenAddress")
				if err != nil {
					return nil, err
				}
				return q.TokenSupply(ctx, tokenAddress)
			},
		},
		{
			definition: mcp.NewTool(tools.NameGetTokenInfo,
				mcp.WithDescription("Get information about an ERC20 token on Abstract Chain"),
				mcp.WithString("tokenAddress", mcp.Required(), mcp.Description("ERC20 token contract address on Abstract Chain")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			handler: func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
				tokenAddress, err := request.RequireString("tokenAddress")
				if err != nil {
					return nil, err
				}
				return q.TokenInfo(ctx, tokenAddress)
			},
		},
		{
			definition: mcp.NewTool(tools.NameGetTransactionData,
				mcp.WithDescription("Get transaction information on Abstract Chain"),
				mcp.WithString("txHash", mcp.Required(), mcp.Description("Transaction hash to check")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			handler: func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
				txHash, err := request.RequireString("txHash")
				if err != nil {
					return nil, err
				}
				return q.TransactionData(ctx, txHash)
			},
		},
		{
			definition: mcp.NewTool(tools.NameGetBlockInfo,
				mcp.WithDescription("Get information about a block on Abstract Chain"),
				mcp.WithString("blockHash", mcp.Required(), mcp.Description("Block hash")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			handler: func(ctx context.Context, request mcp.CallToolRequest) (interface{}, error) {
				blockHash, err := request.RequireString("blockHash")
				if err != nil {
					return nil, err
				}
				return q.BlockInfo(ctx, blockHash)
			},
		},
	}
}
