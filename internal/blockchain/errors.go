// internal/blockchain/errors.go
package blockchain

import "fmt"

// ConnectionError means a chain handle could not be constructed. Reachability problems are
// not reported here; they surface from whichever call performs network I/O.
type ConnectionError struct {
	Network string
	URL     string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s RPC: %v", e.Network, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
