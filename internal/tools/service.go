// internal/tools/service.go
package tools

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain"
	"github.com/rovshanmuradov/abstract-mcp/internal/config"
	"github.com/rovshanmuradov/abstract-mcp/internal/token"
	"github.com/rovshanmuradov/abstract-mcp/internal/utils/logger"
)

// Service implements the chain query tools. Each call builds its own chain handle and
// shares nothing with concurrent calls.
type Service struct {
	chain        config.ChainConfig
	connector    blockchain.Connector
	reader       *token.Reader
	callTimeout  time.Duration
	tokenWorkers int
	now          func() time.Time
	logger       *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCallTimeout bounds each single node call and each fan-out wait.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Service) { s.callTimeout = d }
}

// WithTokenWorkers caps the number of tokens looked up concurrently by WalletBalance.
func WithTokenWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tokenWorkers = n
		}
	}
}

func NewService(chain config.ChainConfig, connector blockchain.Connector, reader *token.Reader, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		chain:        chain,
		connector:    connector,
		reader:       reader,
		tokenWorkers: config.DefaultTokenWorkers,
		now:          time.Now,
		logger:       log.Named("tools"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chain returns the chain this service queries.
func (s *Service) Chain() config.ChainConfig {
	return s.chain
}

// begin opens a chain handle for one invocation and returns a logger tagged for it.
func (s *Service) begin(ctx context.Context, operation string) (blockchain.Client, *zap.Logger, func(), error) {
	opLogger := logger.WithOperation(s.logger, operation)
	end := logger.TrackPerformance(opLogger, operation)

	client, err := s.connector.Handle(ctx)
	if err != nil {
		end()
		return nil, opLogger, nil, err
	}
	return client, opLogger, func() {
		client.Close()
		end()
	}, nil
}

func (s *Service) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(isoMillis)
}
