// internal/mcpserver/server.go
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/abstract-mcp/internal/utils/metrics"
)

const (
	ServerName    = "Abstract Chain MCP"
	ServerVersion = "1.0.0"
	Instructions  = "An MCP server for AI agents to interact with Abstract Chain"

	shutdownTimeout = 5 * time.Second
)

// Server exposes the chain query tools over MCP.
type Server struct {
	mcp      *server.MCPServer
	registry *Registry
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// New registers every tool backed by q. collector may be nil.
func New(q Queries, collector *metrics.Collector, logger *zap.Logger) (*Server, error) {
	s := &Server{
		mcp: server.NewMCPServer(ServerName, ServerVersion,
			server.WithToolCapabilities(true),
			server.WithInstructions(Instructions),
			server.WithRecovery(),
		),
		registry: NewRegistry(logger),
		metrics:  collector,
		logger:   logger.Named("mcp-server"),
	}

	for _, spec := range toolSpecs(q) {
		tool := Tool{
			Definition: spec.definition,
			Handler:    s.dispatch(spec.definition.Name, spec.handler),
		}
		if err := s.registry.Register(tool); err != nil {
			return nil, err
		}
	}
	for _, tool := range s.registry.Tools() {
		s.mcp.AddTool(tool.Definition, tool.Handler)
	}

	s.logger.Info("Tools registered", zap.Strings("tools", s.registry.List()))
	return s, nil
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func (s *Server) Registry() *Registry {
	return s.registry
}

// dispatch turns a handler into an MCP tool handler. Handler failures become error results
// carrying the failure message; the protocol call itself always succeeds.
func (s *Server) dispatch(name string, h handlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := h(ctx, request)
		s.metrics.RecordToolCall(name, time.Since(start), err)

		if err != nil {
			s.logger.Error("Tool call failed", zap.String("tool", name), zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := render(result)
		if err != nil {
			s.logger.Error("Failed to render tool result", zap.String("tool", name), zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("failed to render result: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// render encodes v as two-space indented JSON without HTML escaping.
func render(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is cancelled or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger.Named("stdio")))

	s.logger.Info("Abstract Chain MCP server started successfully", zap.String("transport", "stdio"))
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sse := server.NewSSEServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(addr)
	}()
	s.logger.Info("Abstract Chain MCP server started successfully",
		zap.String("transport", "sse"),
		zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("sse transport: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sse shutdown: %w", err)
	}
	return nil
}
