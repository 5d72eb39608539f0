// Package tools provides the registry and common types for MCP tools.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/docsplit/internal/logging"
	"github.com/d-kuro/docsplit/internal/security"
)

// ServerTool pairs a tool definition with the function that registers its
// typed handler on an MCP server.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}

// Context contains common dependencies needed by tools.
type Context struct {
	Logger    *logging.Logger
	Validator security.Validator
}
