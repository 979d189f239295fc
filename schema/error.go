package schema

import "github.com/viant/jsonrpc"

const (
	// ToolExecutionError is reported when a registered tool handler fails outside the tool result channel.
	ToolExecutionError = -32003
)

// NewInvalidArguments creates an invalid tool arguments error
func NewInvalidArguments(toolName string, reason string) *jsonrpc.Error {
	return jsonrpc.NewError(jsonrpc.InvalidParams, "Invalid arguments for tool "+toolName+": "+reason, nil)
}
