// internal/blockchain/erc20/erc20.go
package erc20

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Read-only subset of the ERC20 interface.
const abiJSON = `[
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const (
	MethodSymbol      = "symbol"
	MethodName        = "name"
	MethodDecimals    = "decimals"
	MethodTotalSupply = "totalSupply"
	MethodBalanceOf   = "balanceOf"
)

// ABI is the parsed ERC20 interface.
var ABI = mustParse(abiJSON)

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("erc20: invalid ABI: %v", err))
	}
	return parsed
}

// Caller is the part of a chain handle needed for contract reads.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

// Call invokes a view method on token and decodes its single return value as T.
func Call[T any](ctx context.Context, caller Caller, token common.Address, method string, args ...interface{}) (T, error) {
	var zero T

	data, err := ABI.Pack(method, args...)
	if err != nil {
		return zero, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data})
	if err != nil {
		return zero, fmt.Errorf("%s call failed: %w", method, err)
	}

	out, err := ABI.Unpack(method, result)
	if err != nil {
		return zero, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) != 1 {
		return zero, fmt.Errorf("unexpected %s output count: %d", method, len(out))
	}

	value, ok := out[0].(T)
	if !ok {
		return zero, fmt.Errorf("unexpected %s output type %T", method, out[0])
	}
	return value, nil
}
