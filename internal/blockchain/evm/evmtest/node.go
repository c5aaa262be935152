// internal/blockchain/evm/evmtest/node.go

// Package evmtest runs an in-process JSON-RPC node for tests. It speaks the real wire
// protocol (go-ethereum rpc.Server over httptest), so the production client is exercised
// end to end.
package evmtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain/erc20"
)

// ErrReverted is returned for token methods configured to fail.
var ErrReverted = errors.New("execution reverted")

// Token is a fake ERC20 contract.
type Token struct {
	Symbol      string
	Name        string
	Decimals    uint8
	TotalSupply *big.Int
	Balances    map[common.Address]*big.Int
	// Revert lists methods that fail with ErrReverted.
	Revert []string
}

func (t *Token) reverts(method string) bool {
	for _, m := range t.Revert {
		if m == method {
			return true
		}
	}
	return false
}

// Node is a call-counting stub chain node.
type Node struct {
	URL string

	server   *httptest.Server
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	tokens   map[common.Address]*Token
	receipts map[common.Hash]json.RawMessage
	blocks   map[common.Hash]json.RawMessage
	delays   map[string]time.Duration
	calls    map[string]int
}

// NewNode starts a node and stops it when the test ends.
func NewNode(t testing.TB) *Node {
	t.Helper()

	n := &Node{
		balances: make(map[common.Address]*big.Int),
		tokens:   make(map[common.Address]*Token),
		receipts: make(map[common.Hash]json.RawMessage),
		blocks:   make(map[common.Hash]json.RawMessage),
		delays:   make(map[string]time.Duration),
		calls:    make(map[string]int),
	}

	srv := rpc.NewServer()
	if err := srv.RegisterName("eth", &ethService{node: n}); err != nil {
		t.Fatalf("register eth service: %v", err)
	}
	n.server = httptest.NewServer(srv)
	n.URL = n.server.URL

	t.Cleanup(func() {
		n.server.Close()
		srv.Stop()
	})
	return n
}

func (n *Node) SetBalance(account common.Address, balance *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[account] = balance
}

func (n *Node) AddToken(address common.Address, token Token) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tokens[address] = &token
}

func (n *Node) AddReceipt(receipt blockchain.Receipt) {
	n.store(n.receipts, receipt.TxHash, receipt)
}

func (n *Node) AddBlock(block blockchain.Block) {
	n.store(n.blocks, block.Hash, block)
}

func (n *Node) store(dst map[common.Hash]json.RawMessage, key common.Hash, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	dst[key] = raw
}

// SetDelay makes every request for method wait d (or until the request is cancelled).
func (n *Node) SetDelay(method string, d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delays[method] = d
}

// Calls returns how many requests for method reached the node.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

// TotalCalls returns the number of requests of any method.
func (n *Node) TotalCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, c := range n.calls {
		total += c
	}
	return total
}

func (n *Node) enter(ctx context.Context, method string) error {
	n.mu.Lock()
	n.calls[method]++
	delay := n.delays[method]
	n.mu.Unlock()

	if delay == 0 {
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type callArgs struct {
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Input hexutil.Bytes   `json:"input"`
}

func (a callArgs) payload() []byte {
	if len(a.Input) > 0 {
		return a.Input
	}
	return a.Data
}

// ethService is registered under the "eth" namespace; method names map to eth_<lowerCamel>.
type ethService struct {
	node *Node
}

func (s *ethService) GetBalance(ctx context.Context, account common.Address, _ string) (*hexutil.Big, error) {
	if err := s.node.enter(ctx, "eth_getBalance"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if b, ok := s.node.balances[account]; ok {
		return (*hexutil.Big)(b), nil
	}
	return (*hexutil.Big)(big.NewInt(0)), nil
}

func (s *ethService) Call(ctx context.Context, args callArgs, _ string) (hexutil.Bytes, error) {
	if err := s.node.enter(ctx, "eth_call"); err != nil {
		return nil, err
	}
	if args.To == nil {
		return nil, errors.New("missing to")
	}

	s.node.mu.Lock()
	token, ok := s.node.tokens[*args.To]
	s.node.mu.Unlock()
	if !ok {
		// Calling an address without code returns empty data.
		return hexutil.Bytes{}, nil
	}

	data := args.payload()
	if len(data) < 4 {
		return nil, ErrReverted
	}
	method, err := erc20.ABI.MethodById(data[:4])
	if err != nil {
		return nil, ErrReverted
	}
	if token.reverts(method.Name) {
		return nil, ErrReverted
	}

	var value interface{}
	switch method.Name {
	case erc20.MethodSymbol:
		value = token.Symbol
	case erc20.MethodName:
		value = token.Name
	case erc20.MethodDecimals:
		value = token.Decimals
	case erc20.MethodTotalSupply:
		value = orZero(token.TotalSupply)
	case erc20.MethodBalanceOf:
		in, err := method.Inputs.Unpack(data[4:])
		if err != nil || len(in) != 1 {
			return nil, ErrReverted
		}
		holder := in[0].(common.Address)
		value = orZero(token.Balances[holder])
	default:
		return nil, fmt.Errorf("unsupported method %s", method.Name)
	}

	out, err := method.Outputs.Pack(value)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ethService) GetTransactionReceipt(ctx context.Context, hash common.Hash) (json.RawMessage, error) {
	if err := s.node.enter(ctx, "eth_getTransactionReceipt"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if raw, ok := s.node.receipts[hash]; ok {
		return raw, nil
	}
	return json.RawMessage("null"), nil
}

func (s *ethService) GetBlockByHash(ctx context.Context, hash common.Hash, _ bool) (json.RawMessage, error) {
	if err := s.node.enter(ctx, "eth_getBlockByHash"); err != nil {
		return nil, err
	}
	s.node.mu.Lock()
	defer s.node.mu.Unlock()
	if raw, ok := s.node.blocks[hash]; ok {
		return raw, nil
	}
	return json.RawMessage("null"), nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
