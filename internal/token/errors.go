// internal/token/errors.go
package token

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses.
	ErrInvalidAddress = errors.New("invalid token address")

	// ErrInvalidOptions means the caller did not request exactly one amount.
	ErrInvalidOptions = errors.New("exactly one of BalanceOf or TotalSupply must be requested")
)

// ReadError means at least one required field of a token could not be read.
type ReadError struct {
	Address string
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read token %s: %v", e.Address, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
