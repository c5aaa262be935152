// cmd/abstract-mcp/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/blockchain/evm"
	"github.com/rovshanmuradov/abstract-mcp/internal/config"
	"github.com/rovshanmuradov/abstract-mcp/internal/mcpserver"
	"github.com/rovshanmuradov/abstract-mcp/internal/token"
	"github.com/rovshanmuradov/abstract-mcp/internal/tools"
	"github.com/rovshanmuradov/abstract-mcp/internal/utils/logger"
	"github.com/rovshanmuradov/abstract-mcp/internal/utils/metrics"
)

var (
	configPath    string
	transportFlag string
	debugFlag     bool
)

var rootCmd = &cobra.Command{
	Use:          "abstract-mcp",
	Short:        "MCP server exposing read-only Abstract Chain queries",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a config file (defaults are used when empty)")
	rootCmd.Flags().StringVarP(&transportFlag, "transport", "t", "", "Transport to serve: stdio or sse")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath, transportFlag, debugFlag)
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector()
	srv, err := buildServer(cfg, collector, log.Logger)
	if err != nil {
		log.LogError("Failed to build server", err)
		return err
	}

	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(cfg.MetricsAddr, collector, log.Logger)
		defer stopMetrics()
	}

	log.Info("Starting Abstract Chain MCP server",
		zap.String("rpc_url", cfg.Chain.RPCURL),
		zap.Int64("chain_id", cfg.Chain.ChainID),
		zap.String("transport", cfg.Transport))

	switch cfg.Transport {
	case config.TransportSSE:
		err = srv.ServeSSE(ctx, cfg.SSEAddr)
	default:
		err = srv.ServeStdio(ctx, os.Stdin, os.Stdout)
	}
	if err != nil {
		log.LogError("Server stopped with error", err)
		return err
	}

	log.Info("Server stopped")
	return nil
}

// loadConfig reads the config file and applies command-line overrides on top of it.
func loadConfig(path, transport string, debug bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if transport != "" {
		cfg.Transport = transport
	}
	if debug {
		cfg.DebugLogging = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildServer wires connector, token reader and tool service into an MCP server.
func buildServer(cfg *config.Config, collector *metrics.Collector, log *zap.Logger) (*mcpserver.Server, error) {
	policy := evm.RetryPolicy{
		Retries:    cfg.Retries,
		MaxElapsed: cfg.RetryMaxElapsedDuration(),
	}
	connector := evm.NewConnector(cfg.Chain, policy, collector, log)
	reader := token.NewReader(cfg.CallTimeoutDuration(), log)

	svc := tools.NewService(cfg.Chain, connector, reader, log,
		tools.WithCallTimeout(cfg.CallTimeoutDuration()),
		tools.WithTokenWorkers(cfg.TokenWorkers),
	)
	return mcpserver.New(svc, collector, log)
}

func serveMetrics(addr string, collector *metrics.Collector, log *zap.Logger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Metrics endpoint listening", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(ctx)
	}
}
