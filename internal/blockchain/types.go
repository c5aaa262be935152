// internal/blockchain/types.go
package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Client is a read-only handle to a chain node. A handle belongs to the invocation that
// created it and must be closed when that invocation completes.
type Client interface {
	// Native balance at the latest block.
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	// eth_call against the latest block.
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	// Receipt by transaction hash; (nil, nil) when the node has none.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*Receipt, error)
	// Block header and transaction hashes; (nil, nil) when the node has none.
	BlockByHash(ctx context.Context, blockHash string) (*Block, error)
	Close()
}

// Connector produces chain handles.
type Connector interface {
	Handle(ctx context.Context) (Client, error)
}

// Receipt is the projection of eth_getTransactionReceipt this server uses.
// Decoded field by field so chains with non-standard transaction types still parse.
type Receipt struct {
	TxHash          common.Hash     `json:"transactionHash"`
	BlockNumber     *hexutil.Big    `json:"blockNumber"`
	BlockHash       common.Hash     `json:"blockHash"`
	Status          *hexutil.Uint64 `json:"status"`
	GasUsed         *hexutil.Big    `json:"gasUsed"`
	From            common.Address  `json:"from"`
	To              *common.Address `json:"to"`
	ContractAddress *common.Address `json:"contractAddress"`
	Logs            []Log           `json:"logs"`
}

// Succeeded reports whether the receipt carries status 1. Receipts without a status
// field (pre-Byzantium) count as failed.
func (r *Receipt) Succeeded() bool {
	return r.Status != nil && uint64(*r.Status) == 1
}

type Log struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

// Block is the projection of eth_getBlockByHash(hash, false).
type Block struct {
	Number       *hexutil.Big   `json:"number"`
	Hash         common.Hash    `json:"hash"`
	ParentHash   common.Hash    `json:"parentHash"`
	Miner        common.Address `json:"miner"`
	Timestamp    hexutil.Uint64 `json:"timestamp"`
	GasUsed      *hexutil.Big   `json:"gasUsed"`
	GasLimit     *hexutil.Big   `json:"gasLimit"`
	Transactions []common.Hash  `json:"transactions"`
}

// BigString renders an optional node quantity as a base-10 string; absent values read as 0.
func BigString(v *hexutil.Big) string {
	if v == nil {
		return "0"
	}
	return v.ToInt().String()
}

// BigUint64 is BigString for values that fit in 64 bits, such as block numbers.
func BigUint64(v *hexutil.Big) uint64 {
	if v == nil {
		return 0
	}
	return v.ToInt().Uint64()
}
