// internal/token/reader.go
package token

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain/erc20"
)

// Options selects which amount is read alongside the metadata. Exactly one must be set.
type Options struct {
	BalanceOf   *common.Address
	TotalSupply bool
}

func (o Options) validate() error {
	if (o.BalanceOf != nil) == o.TotalSupply {
		return ErrInvalidOptions
	}
	return nil
}

// Descriptor is a token's metadata plus one amount. Never mutated after Read returns it.
type Descriptor struct {
	Address   string
	Symbol    string
	Name      string
	Decimals  uint8
	Raw       *big.Int
	Formatted string
	NonZero   bool
}

// RawString is the exact base-unit amount.
func (d *Descriptor) RawString() string {
	return d.Raw.String()
}

// Reader fetches token descriptors.
type Reader struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewReader creates a reader. A positive timeout bounds each Read.
func NewReader(timeout time.Duration, logger *zap.Logger) *Reader {
	return &Reader{
		timeout: timeout,
		logger:  logger.Named("token-reader"),
	}
}

// Read issues the symbol, name, decimals and amount calls concurrently and waits for all of
// them. Any failure fails the whole read; a partial descriptor is never returned.
func (r *Reader) Read(ctx context.Context, client blockchain.Client, address string, opts Options) (*Descriptor, error) {
	if err := opts.validate(); err != nil {
		return nil, &ReadError{Address: address, Err: err}
	}
	if !common.IsHexAddress(address) {
		return nil, &ReadError{Address: address, Err: ErrInvalidAddress}
	}
	contract := common.HexToAddress(address)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var (
		symbol   string
		name     string
		decimals uint8
		amount   *big.Int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		symbol, err = erc20.Call[string](gCtx, client, contract, erc20.MethodSymbol)
		return err
	})
	g.Go(func() (err error) {
		name, err = erc20.Call[string](gCtx, client, contract, erc20.MethodName)
		return err
	})
	g.Go(func() (err error) {
		decimals, err = erc20.Call[uint8](gCtx, client, contract, erc20.MethodDecimals)
		return err
	})
	g.Go(func() (err error) {
		if opts.TotalSupply {
			amount, err = erc20.Call[*big.Int](gCtx, client, contract, erc20.MethodTotalSupply)
		} else {
			amount, err = erc20.Call[*big.Int](gCtx, client, contract, erc20.MethodBalanceOf, *opts.BalanceOf)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Debug("Token read failed", zap.String("token", address), zap.Error(err))
		return nil, &ReadError{Address: address, Err: err}
	}

	return &Descriptor{
		Address:   address,
		Symbol:    symbol,
		Name:      name,
		Decimals:  decimals,
		Raw:       amount,
		Formatted: FormatUnits(amount, decimals),
		NonZero:   amount.Sign() != 0,
	}, nil
}
