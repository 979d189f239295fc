package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-lambda/schema"
	"github.com/viant/mcp-lambda/validator"
	protoschema "github.com/viant/mcp-protocol/schema"
)

// ToolHandler executes a tool, args are raw JSON arguments as received from the client
type ToolHandler func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

type registeredTool struct {
	schema.Tool
	spec    validator.Spec
	handler ToolHandler
}

type registry struct {
	mux   sync.RWMutex
	order []string
	tools map[string]*registeredTool
}

func (r *registry) add(tool *registeredTool) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.tools[tool.Name]; ok {
		return fmt.Errorf("tool %v was already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	return nil
}

func (r *registry) lookup(name string) (*registeredTool, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret, ok := r.tools[name]
	return ret, ok
}

func (r *registry) list() []schema.Tool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]schema.Tool, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, r.tools[name].Tool)
	}
	return ret
}

func newRegistry() *registry {
	return &registry{tools: map[string]*registeredTool{}}
}

// ListTools handles the tools/list method
func (h *Handler) ListTools(ctx context.Context, request *jsonrpc.Request) (*schema.ListToolsResult, *jsonrpc.Error) {
	return &schema.ListToolsResult{Tools: h.tools.list()}, nil
}

// CallTool handles the tools/call method
func (h *Handler) CallTool(ctx context.Context, request *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	params := &schema.CallToolRequestParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
	}
	tool, ok := h.tools.lookup(params.Name)
	if !ok {
		return nil, protoschema.NewUnknownTool(params.Name)
	}
	if err := tool.spec.Validate(params.Arguments); err != nil {
		return nil, schema.NewInvalidArguments(params.Name, err.Error())
	}
	result, err := tool.handler(ctx, params.Arguments)
	if err != nil {
		_ = h.Logger.Error(ctx, fmt.Sprintf("tool %v failed: %v", params.Name, err))
		return schema.NewTextResult(err.Error(), true), nil
	}
	if len(result) == 0 {
		return schema.NewTextResult("", false), nil
	}
	return result, nil
}
