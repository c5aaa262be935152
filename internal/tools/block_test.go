package tools

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
)

func TestBlockInfo(t *testing.T) {
	node, svc := newTestService(t)
	hash := common.HexToHash("0xb10c")
	node.AddBlock(blockchain.Block{
		Number:       (*hexutil.Big)(big.NewInt(4_200_000)),
		Hash:         hash,
		ParentHash:   common.HexToHash("0xb10b"),
		Miner:        common.HexToAddress("0x0000000000000000000000000000000000008001"),
		Timestamp:    1_700_000_000,
		GasUsed:      (*hexutil.Big)(big.NewInt(123_456)),
		GasLimit:     (*hexutil.Big)(big.NewInt(1_125_899_906_842_624)),
		Transactions: []common.Hash{common.HexToHash("0xaa01"), common.HexToHash("0xaa02")},
	})

	payload, err := svc.BlockInfo(context.Background(), hash.Hex())
	require.NoError(t, err)
	assert.Equal(t, &BlockReport{
		BlockNumber:      4_200_000,
		BlockHash:        hash.Hex(),
		Timestamp:        "2023-11-14T22:13:20.000Z",
		ParentHash:       common.HexToHash("0xb10b").Hex(),
		Miner:            "0x0000000000000000000000000000000000008001",
		GasUsed:          "123456",
		GasLimit:         "1125899906842624",
		Transactions:     []string{common.HexToHash("0xaa01").Hex(), common.HexToHash("0xaa02").Hex()},
		TransactionCount: 2,
	}, payload)
}

func TestBlockInfoEpochAndEmpty(t *testing.T) {
	node, svc := newTestService(t)
	hash := common.HexToHash("0x01")
	node.AddBlock(blockchain.Block{Number: (*hexutil.Big)(big.NewInt(0)), Hash: hash})

	payload, err := svc.BlockInfo(context.Background(), hash.Hex())
	require.NoError(t, err)
	report := payload.(*BlockReport)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", report.Timestamp)
	assert.NotNil(t, report.Transactions)
	assert.Empty(t, report.Transactions)
	assert.Equal(t, 0, report.TransactionCount)
}

func TestBlockInfoNotFound(t *testing.T) {
	_, svc := newTestService(t)

	payload, err := svc.BlockInfo(context.Background(), common.HexToHash("0xfeed").Hex())
	require.NoError(t, err)
	assert.Equal(t, &StatusReport{Status: StatusNotFound, Message: "Block not found on the blockchain"}, payload)
}

func TestBlockInfoRejectsMissingPrefix(t *testing.T) {
	node, svc := newTestService(t)

	payload, err := svc.BlockInfo(context.Background(), "not-a-hash")
	require.NoError(t, err)
	assert.Equal(t, &StatusReport{
		Status:             StatusError,
		Message:            "Invalid block hash format. Block hash must start with 0x.",
		RequestedBlockHash: "not-a-hash",
	}, payload)
	assert.Equal(t, 0, node.TotalCalls())
}

func TestBlockInfoMalformedHexFailsAtNode(t *testing.T) {
	_, svc := newTestService(t)

	_, err := svc.BlockInfo(context.Background(), "0x1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get block information:")
}
