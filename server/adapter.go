package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-lambda/schema"
	protoschema "github.com/viant/mcp-protocol/schema"
)

// Adapter calls a Handler in process, bypassing stdio
type Adapter struct {
	handler       *Handler
	seq           atomic.Int64
	mux           sync.Mutex
	notifications []*jsonrpc.Notification
}

// Notify records server to client notifications
func (a *Adapter) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	a.mux.Lock()
	defer a.mux.Unlock()
	a.notifications = append(a.notifications, notification)
	return nil
}

// Send is not supported, the local endpoint never calls the client
func (a *Adapter) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	return nil, fmt.Errorf("method %v is not supported by adapter", request.Method)
}

// Notifications returns recorded notifications
func (a *Adapter) Notifications() []*jsonrpc.Notification {
	a.mux.Lock()
	defer a.mux.Unlock()
	return append([]*jsonrpc.Notification{}, a.notifications...)
}

// Handler returns underlying handler
func (a *Adapter) Handler() *Handler {
	return a.handler
}

// Serve dispatches a prepared request
func (a *Adapter) Serve(ctx context.Context, method string, params interface{}) (*jsonrpc.Response, error) {
	request, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return nil, err
	}
	request.Jsonrpc = jsonrpc.Version
	request.Id = int(a.seq.Add(1))
	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, request, response)
	return response, nil
}

// Initialize initializes the session and sends initialized notification
func (a *Adapter) Initialize(ctx context.Context) (*protoschema.InitializeResult, error) {
	params := &protoschema.InitializeRequestParams{
		ProtocolVersion: protoschema.LatestProtocolVersion,
		ClientInfo:      protoschema.Implementation{Name: "adapter", Version: "0.1"},
	}
	result, err := call[protoschema.InitializeResult](ctx, a, protoschema.MethodInitialize, params)
	if err != nil {
		return nil, err
	}
	a.handler.OnNotification(ctx, &jsonrpc.Notification{Method: protoschema.MethodNotificationInitialized})
	return result, nil
}

// Ping pings the server
func (a *Adapter) Ping(ctx context.Context) (*protoschema.PingResult, error) {
	return call[protoschema.PingResult](ctx, a, protoschema.MethodPing, map[string]interface{}{})
}

// ListTools lists tools
func (a *Adapter) ListTools(ctx context.Context) (*schema.ListToolsResult, error) {
	return call[schema.ListToolsResult](ctx, a, protoschema.MethodToolsList, map[string]interface{}{})
}

// CallTool calls a tool and returns the raw result
func (a *Adapter) CallTool(ctx context.Context, name string, arguments interface{}) (json.RawMessage, error) {
	params, err := schema.NewCallToolRequestParams(name, arguments)
	if err != nil {
		return nil, err
	}
	response, err := a.Serve(ctx, protoschema.MethodToolsCall, params)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, response.Error
	}
	return json.RawMessage(response.Result), nil
}

// SetLevel sets client logging level
func (a *Adapter) SetLevel(ctx context.Context, level protoschema.LoggingLevel) (*protoschema.SetLevelResult, error) {
	return call[protoschema.SetLevelResult](ctx, a, protoschema.MethodLoggingSetLevel, &protoschema.SetLevelRequestParams{Level: level})
}

func call[R any](ctx context.Context, a *Adapter, method string, params interface{}) (*R, error) {
	response, err := a.Serve(ctx, method, params)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, response.Error
	}
	var result R
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AsClient returns an in process client bound to a new handler
func (s *Server) AsClient(ctx context.Context) *Adapter {
	ret := &Adapter{}
	ret.handler = s.newHandler(ctx, ret)
	return ret
}
