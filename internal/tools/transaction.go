// internal/tools/transaction.go
package tools

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
)

const pendingMessage = "Transaction is pending or not found on the blockchain"

// TransactionData reports a transaction's receipt. A missing receipt is a normal outcome and
// yields a pending StatusReport; otherwise the result is a *TransactionReport.
func (s *Service) TransactionData(ctx context.Context, txHash string) (Payload, error) {
	report, err := s.transactionData(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}
	return report, nil
}

func (s *Service) transactionData(ctx context.Context, txHash string) (Payload, error) {
	if !isHash(txHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxHash, txHash)
	}

	client, log, done, err := s.begin(ctx, NameGetTransactionData)
	if err != nil {
		return nil, err
	}
	defer done()

	callCtx, cancel := s.withDeadline(ctx)
	defer cancel()

	receipt, err := client.TransactionReceipt(callCtx, common.HexToHash(txHash))
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		log.Debug("Receipt not available", zap.String("tx_hash", txHash))
		return &StatusReport{Status: StatusPending, Message: pendingMessage}, nil
	}

	return transactionReport(txHash, receipt), nil
}

func transactionReport(txHash string, r *blockchain.Receipt) *TransactionReport {
	status := StatusFailed
	if r.Succeeded() {
		status = StatusSuccess
	}

	logs := make([]LogEntry, 0, len(r.Logs))
	for _, l := range r.Logs {
		topics := make([]string, 0, len(l.Topics))
		for _, topic := range l.Topics {
			topics = append(topics, topic.Hex())
		}
		logs = append(logs, LogEntry{
			Address: l.Address.Hex(),
			Topics:  topics,
			Data:    hexutil.Encode(l.Data),
		})
	}

	return &TransactionReport{
		TxHash:          txHash,
		BlockNumber:     blockchain.BigUint64(r.BlockNumber),
		BlockHash:       r.BlockHash.Hex(),
		Status:          status,
		GasUsed:         blockchain.BigString(r.GasUsed),
		From:            r.From.Hex(),
		To:              addressPtr(r.To),
		ContractAddress: addressPtr(r.ContractAddress),
		Logs:            logs,
	}
}

func addressPtr(a *common.Address) *string {
	if a == nil {
		return nil
	}
	s := a.Hex()
	return &s
}

// isHash reports whether s is a 0x-prefixed 32-byte hex string.
func isHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
