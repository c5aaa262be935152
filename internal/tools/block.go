// internal/tools/block.go
package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
)

const (
	invalidBlockHashMessage = "Invalid block hash format. Block hash must start with 0x."
	blockNotFoundMessage    = "Block not found on the blockchain"
)

// BlockInfo reports a block by hash. A hash without the 0x prefix yields an error StatusReport
// without contacting the node; an unknown block yields a not-found StatusReport.
func (s *Service) BlockInfo(ctx context.Context, blockHash string) (Payload, error) {
	if !strings.HasPrefix(blockHash, "0x") {
		return &StatusReport{
			Status:             StatusError,
			Message:            invalidBlockHashMessage,
			RequestedBlockHash: blockHash,
		}, nil
	}

	report, err := s.blockInfo(ctx, blockHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get block information: %w", err)
	}
	return report, nil
}

func (s *Service) blockInfo(ctx context.Context, blockHash string) (Payload, error) {
	client, _, done, err := s.begin(ctx, NameGetBlockInfo)
	if err != nil {
		return nil, err
	}
	defer done()

	callCtx, cancel := s.withDeadline(ctx)
	defer cancel()

	block, err := client.BlockByHash(callCtx, blockHash)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return &StatusReport{Status: StatusNotFound, Message: blockNotFoundMessage}, nil
	}

	return blockReport(block), nil
}

func blockReport(b *blockchain.Block) *BlockReport {
	txs := make([]string, 0, len(b.Transactions))
	for _, h := range b.Transactions {
		txs = append(txs, h.Hex())
	}

	return &BlockReport{
		BlockNumber:      blockchain.BigUint64(b.Number),
		BlockHash:        b.Hash.Hex(),
		Timestamp:        time.Unix(int64(b.Timestamp), 0).UTC().Format(isoMillis),
		ParentHash:       b.ParentHash.Hex(),
		Miner:            b.Miner.Hex(),
		GasUsed:          blockchain.BigString(b.GasUsed),
		GasLimit:         blockchain.BigString(b.GasLimit),
		Transactions:     txs,
		TransactionCount: len(txs),
	}
}
