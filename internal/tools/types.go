// internal/tools/types.go
package tools

import "errors"

// Tool names as exposed to callers.
const (
	NameGetWalletBalance   = "getWalletBalance"
	NameGetTokenSupply     = "getTokenSupply"
	NameGetTokenInfo       = "getTokenInfo"
	NameGetTransactionData = "getTransactionData"
	NameGetBlockInfo       = "getBlockInfo"
)

// Status values callers branch on.
const (
	StatusPending  = "pending"
	StatusError    = "error"
	StatusNotFound = "not found"
	StatusSuccess  = "success"
	StatusFailed   = "failed"
)

const tokenTypeERC20 = "ERC20"

// isoMillis matches JavaScript's Date.prototype.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z"

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidTxHash  = errors.New("invalid transaction hash")
)

// Payload is implemented by every report a tool can return.
type Payload interface {
	payload()
}

// StatusReport is the explicit pending / not found / error outcome.
type StatusReport struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	RequestedBlockHash string `json:"requestedBlockHash,omitempty"`
}

type WalletBalanceRequest struct {
	Address             string   `json:"address"`
	TokenAddresses      []string `json:"tokenAddresses,omitempty"`
	IncludeZeroBalances bool     `json:"includeZeroBalances"`
}

type NativeBalance struct {
	Symbol     string `json:"symbol"`
	Balance    string `json:"balance"`
	RawBalance string `json:"rawBalance"`
}

type TokenBalance struct {
	TokenAddress string `json:"tokenAddress"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Decimals     uint8  `json:"decimals"`
	Balance      string `json:"balance"`
	RawBalance   string `json:"rawBalance"`
	HasBalance   bool   `json:"hasBalance"`
}

type BalanceReport struct {
	Address     string         `json:"address"`
	NativeToken NativeBalance  `json:"nativeToken"`
	Tokens      []TokenBalance `json:"tokens"`
	TokenCount  int            `json:"tokenCount"`
	Network     string         `json:"network"`
	ChainID     int64          `json:"chainId"`
	Timestamp   string         `json:"timestamp"`
}

type SupplyReport struct {
	TokenAddress   string `json:"tokenAddress"`
	TokenName      string `json:"tokenName"`
	Symbol         string `json:"symbol"`
	Decimals       uint8  `json:"decimals"`
	TotalSupply    string `json:"totalSupply"`
	RawTotalSupply string `json:"rawTotalSupply"`
}

type NetworkInfo struct {
	Name    string `json:"name"`
	ChainID int64  `json:"chainId"`
}

type TokenMetadata struct {
	FormattedSupply string `json:"formattedSupply"`
	TokenType       string `json:"tokenType"`
	Timestamp       string `json:"timestamp"`
}

type TokenInfoReport struct {
	SupplyReport
	Network  NetworkInfo   `json:"network"`
	Metadata TokenMetadata `json:"metadata"`
}

type LogEntry struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

type TransactionReport struct {
	TxHash          string     `json:"txHash"`
	BlockNumber     uint64     `json:"blockNumber"`
	BlockHash       string     `json:"blockHash"`
	Status          string     `json:"status"`
	GasUsed         string     `json:"gasUsed"`
	From            string     `json:"from"`
	To              *string    `json:"to"`
	ContractAddress *string    `json:"contractAddress"`
	Logs            []LogEntry `json:"logs"`
}

type BlockReport struct {
	BlockNumber      uint64   `json:"blockNumber"`
	BlockHash        string   `json:"blockHash"`
	Timestamp        string   `json:"timestamp"`
	ParentHash       string   `json:"parentHash"`
	Miner            string   `json:"miner"`
	GasUsed          string   `json:"gasUsed"`
	GasLimit         string   `json:"gasLimit"`
	Transactions     []string `json:"transactions"`
	TransactionCount int      `json:"transactionCount"`
}

func (*StatusReport) payload()      {}
func (*BalanceReport) payload()     {}
func (*SupplyReport) payload()      {}
func (*TokenInfoReport) payload()   {}
func (*TransactionReport) payload() {}
func (*BlockReport) payload()       {}
