package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/mcp-lambda/errs"
	"github.com/viant/mcp-lambda/schema"
	"github.com/viant/mcp-lambda/server"
	protoschema "github.com/viant/mcp-protocol/schema"
)

const unknownBackendError = "Unknown error from backend"

var emptyArguments = json.RawMessage(`{}`)

// Handle forwards a tool invocation to the backend.
// Intercepted raw arguments, when captured for toolName, take precedence over args
// and are consumed before forwarding whatever the outcome. A capture made for a
// different request id is put back for that request.
func (s *Service) Handle(ctx context.Context, toolName string, args json.RawMessage) (json.RawMessage, error) {
	s.logger.Printf("tool %v: received call", toolName)
	arguments := s.resolveArguments(ctx, toolName, args)

	params := &schema.CallToolRequestParams{Name: toolName, Arguments: arguments}
	response, err := s.client.Call(ctx, protoschema.MethodToolsCall, params)
	if err != nil {
		s.logger.Printf("tool %v: transport error: %v", toolName, err)
		if !errs.Is(err, errs.Transport) {
			err = errs.NewTransport("error in JSON-RPC call", err)
		}
		return nil, err
	}
	if response.Error != nil {
		message := response.Error.Message
		if message == "" {
			message = unknownBackendError
		}
		s.logger.Printf("tool %v: backend error %v: %v", toolName, response.Error.Code, message)
		return nil, errs.NewRemoteTool(response.Error.Code, message)
	}
	if isNull(response.Result) {
		s.logger.Printf("tool %v: protocol violation: response without result or error", toolName)
		return nil, errs.NewProtocolViolation("response without result or error")
	}
	s.logger.Printf("tool %v: succeeded", toolName)
	return response.Result, nil
}

func (s *Service) resolveArguments(ctx context.Context, toolName string, args json.RawMessage) json.RawMessage {
	ret := args
	if entry, ok := s.cache.Take(toolName); ok && !isNull(entry.Arguments) {
		if requestID, ok := server.RequestID(ctx); ok && entry.RequestID != nil && fmt.Sprint(requestID) != fmt.Sprint(entry.RequestID) {
			restored := s.cache.Restore(toolName, entry)
			s.logger.Printf("tool %v: capture %v belongs to request %v, serving request %v with parsed arguments (kept: %v)", toolName, entry.CaptureID, entry.RequestID, requestID, restored)
		} else {
			ret = entry.Arguments
			s.logger.Printf("tool %v: using intercepted raw arguments (capture %v): %s", toolName, entry.CaptureID, entry.Arguments)
		}
	}
	if isNull(ret) {
		ret = emptyArguments
	}
	return ret
}
