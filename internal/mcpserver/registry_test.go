package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func noopHandler(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("ok"), nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	require.NoError(t, r.Register(Tool{Definition: mcp.NewTool("b"), Handler: noopHandler}))
	require.NoError(t, r.Register(Tool{Definition: mcp.NewTool("a"), Handler: noopHandler}))

	err := r.Register(Tool{Definition: mcp.NewTool("a"), Handler: noopHandler})
	assert.EqualError(t, err, "tool a already registered")

	assert.Error(t, r.Register(Tool{Definition: mcp.NewTool(""), Handler: noopHandler}))
	assert.Error(t, r.Register(Tool{Definition: mcp.NewTool("c")}))

	assert.Equal(t, []string{"a", "b"}, r.List())

	tool, err := r.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "b", tool.Definition.Name)

	_, err = r.Get("missing")
	assert.EqualError(t, err, "tool missing not found")

	all := r.Tools()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Definition.Name)
}
