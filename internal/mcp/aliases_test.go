// ABOUTME: Short aliases for SDK request and result types used in tests.
// ABOUTME: Keeps handler signatures in table tests readable.
package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	mcpRequest     = mcp.CallToolRequest
	mcpResult      = mcp.CallToolResult
	mcpReadRequest = mcp.ReadResourceRequest
	mcpReadResult  = mcp.ReadResourceResult
)
