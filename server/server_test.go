package server

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-lambda/schema"
	"github.com/viant/mcp-lambda/validator"
	protoschema "github.com/viant/mcp-protocol/schema"
)

func echoHandler(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{"content":[{"type":"text","text":` + string(mustQuote(string(args))) + `}]}`), nil
}

func mustQuote(text string) []byte {
	data, _ := json.Marshal(text)
	return data
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(
		WithImplementation(protoschema.Implementation{Name: "TestServer", Version: "1.0"}),
		WithInstructions("use add"),
	)
	require.NoError(t, err)

	addSchema := &schema.Schema{}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"object","properties":{"a":{"type":"number"},"b":{"type":"number"}},"required":["a","b"]}`), addSchema))
	description := "Adds two numbers"
	require.NoError(t, srv.RegisterTool(schema.Tool{Name: "add", Description: &description, InputSchema: json.RawMessage(`{"type":"object"}`)},
		validator.Translate(addSchema), echoHandler))
	require.NoError(t, srv.RegisterTool(schema.Tool{Name: "fail", InputSchema: json.RawMessage(`{"type":"object"}`)}, nil,
		func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			return nil, errors.New("division by zero")
		}))
	return srv
}

func TestServer_RegisterTool(t *testing.T) {
	srv := newTestServer(t)
	var testCases = []struct {
		description string
		tool        schema.Tool
		handler     ToolHandler
	}{
		{description: "empty name", tool: schema.Tool{}, handler: echoHandler},
		{description: "duplicate name", tool: schema.Tool{Name: "add"}, handler: echoHandler},
		{description: "nil handler", tool: schema.Tool{Name: "other"}},
	}
	for _, testCase := range testCases {
		assert.Error(t, srv.RegisterTool(testCase.tool, nil, testCase.handler), testCase.description)
	}

	tools := srv.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "add", tools[0].Name)
	assert.Equal(t, "fail", tools[1].Name)
}

func TestServer_New(t *testing.T) {
	_, err := New(WithImplementation(protoschema.Implementation{}))
	assert.Error(t, err)

	srv, err := New(WithProtocolVersion("2024-11-05"), WithLoggerName("bridge"))
	require.NoError(t, err)
	assert.Equal(t, "2024-11-05", srv.protocolVersion)
	assert.Equal(t, "MCP", srv.Implementation().Name)
}

func TestHandler_Initialize(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)

	result, err := client.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TestServer", result.ServerInfo.Name)
	assert.Equal(t, "1.0", result.ServerInfo.Version)
	assert.NotEmpty(t, result.ProtocolVersion)
	require.NotNil(t, result.Instructions)
	assert.Equal(t, "use add", *result.Instructions)
	assert.NotNil(t, result.Capabilities.Tools)
	assert.True(t, client.Handler().Initialized)

	_, err = client.Ping(ctx)
	assert.NoError(t, err)
}

func TestHandler_ListTools(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)

	result, err := client.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, result.Tools, 2)
	assert.Equal(t, "add", result.Tools[0].Name)
	require.NotNil(t, result.Tools[0].Description)
	assert.Equal(t, "Adds two numbers", *result.Tools[0].Description)
	assert.JSONEq(t, `{"type":"object"}`, string(result.Tools[1].InputSchema))
}

func TestHandler_CallTool(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)

	var testCases = []struct {
		description  string
		tool         string
		arguments    interface{}
		expect       string
		expectRPCErr bool
	}{
		{
			description: "valid call relays raw result",
			tool:        "add",
			arguments:   json.RawMessage(`{"a":1,"b":2}`),
			expect:      `{"content":[{"type":"text","text":"{\"a\":1,\"b\":2}"}]}`,
		},
		{
			description: "handler error becomes tool error result",
			tool:        "fail",
			arguments:   map[string]interface{}{},
			expect:      `{"content":[{"type":"text","text":"division by zero"}],"isError":true}`,
		},
		{
			description:  "unknown tool",
			tool:         "missing",
			expectRPCErr: true,
		},
		{
			description:  "missing required argument",
			tool:         "add",
			arguments:    json.RawMessage(`{"a":1}`),
			expectRPCErr: true,
		},
		{
			description:  "wrong argument type",
			tool:         "add",
			arguments:    json.RawMessage(`{"a":"1","b":2}`),
			expectRPCErr: true,
		},
	}

	for _, testCase := range testCases {
		result, err := client.CallTool(ctx, testCase.tool, testCase.arguments)
		if testCase.expectRPCErr {
			var rpcErr *jsonrpc.Error
			if assert.ErrorAs(t, err, &rpcErr, testCase.description) {
				assert.EqualValues(t, jsonrpc.InvalidParams, rpcErr.Code, testCase.description)
			}
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, string(result), testCase.description)
	}
}

func TestHandler_UnknownToolMessage(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)
	_, err := client.CallTool(ctx, "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown tool:missing")
}

func TestHandler_Serve(t *testing.T) {
	ctx := context.Background()
	handler := newTestServer(t).AsClient(ctx).Handler()

	response := &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: "1.0", Method: protoschema.MethodPing, Id: 1}, response)
	require.NotNil(t, response.Error)

	response = &jsonrpc.Response{}
	handler.Serve(ctx, &jsonrpc.Request{Jsonrpc: jsonrpc.Version, Method: "resources/list", Id: 2}, response)
	require.NotNil(t, response.Error)
	assert.Contains(t, response.Error.Message, "resources/list")
}

func TestHandler_Logging(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t).AsClient(ctx)

	_, _ = client.CallTool(ctx, "fail", nil)
	assert.Empty(t, client.Notifications())

	_, err := client.SetLevel(ctx, "verbose")
	assert.Error(t, err)

	_, err = client.SetLevel(ctx, protoschema.LoggingLevelWarning)
	require.NoError(t, err)
	_, _ = client.CallTool(ctx, "fail", nil)
	notifications := client.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, protoschema.MethodNotificationMessage, notifications[0].Method)

	params := protoschema.LoggingMessageNotificationParams{}
	require.NoError(t, json.Unmarshal(notifications[0].Params, &params))
	assert.Equal(t, protoschema.LoggingLevelError, params.Level)
	assert.Contains(t, params.Data, "division by zero")
}

func TestHandler_Cancel(t *testing.T) {
	ctx := context.Background()
	srv, err := New()
	require.NoError(t, err)
	started := make(chan struct{})
	require.NoError(t, srv.RegisterTool(schema.Tool{Name: "slow"}, nil, func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		id, _ := RequestID(ctx)
		assert.EqualValues(t, 1, id)
		close(started)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return json.RawMessage(`{}`), nil
		}
	}))
	client := srv.AsClient(ctx)

	done := make(chan json.RawMessage, 1)
	go func() {
		result, _ := client.CallTool(ctx, "slow", nil)
		done <- result
	}()
	<-started
	client.Handler().OnNotification(ctx, &jsonrpc.Notification{Method: protoschema.MethodNotificationCanceled, Params: json.RawMessage(`{"requestId":1}`)})

	select {
	case result := <-done:
		assert.JSONEq(t, `{"content":[{"type":"text","text":"context canceled"}],"isError":true}`, string(result))
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled call did not return")
	}
}
