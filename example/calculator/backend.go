package calculator

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-lambda/schema"
	protoschema "github.com/viant/mcp-protocol/schema"
)

type operands struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

const operandsSchema = `{"type":"object","properties":{"a":{"type":"number","description":"first operand"},"b":{"type":"number","description":"second operand"}},"required":["a","b"]}`

// Backend serves a JSON-RPC over HTTP tool catalog, the way a function URL behind the bridge does
type Backend struct {
	tools []schema.Tool
}

// ServeHTTP handles a single JSON-RPC request
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	request := &jsonrpc.Request{}
	response := &jsonrpc.Response{Jsonrpc: jsonrpc.Version}
	if err = json.Unmarshal(data, request); err != nil {
		response.Error = jsonrpc.NewParsingError(fmt.Sprintf("failed to parse request: %v", err), nil)
	} else {
		response.Id = request.Id
		b.serve(request, response)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func (b *Backend) serve(request *jsonrpc.Request, response *jsonrpc.Response) {
	var result interface{}
	var rpcErr *jsonrpc.Error
	switch request.Method {
	case protoschema.MethodToolsList:
		result = &schema.ListToolsResult{Tools: b.tools}
	case protoschema.MethodToolsCall:
		result, rpcErr = b.call(request.Params)
	default:
		rpcErr = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), nil)
	}
	if rpcErr != nil {
		response.Error = rpcErr
		return
	}
	var err error
	if response.Result, err = json.Marshal(result); err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
	}
}

func (b *Backend) call(data []byte) (*protoschema.CallToolResult, *jsonrpc.Error) {
	params := &schema.CallToolRequestParams{}
	if err := json.Unmarshal(data, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), nil)
	}
	switch params.Name {
	case "add", "divide":
		input := &operands{}
		if err := json.Unmarshal(params.Arguments, input); err != nil {
			return nil, schema.NewInvalidArguments(params.Name, err.Error())
		}
		if params.Name == "add" {
			return schema.NewTextResult(format(input.A+input.B), false), nil
		}
		if input.B == 0 {
			return nil, jsonrpc.NewError(schema.ToolExecutionError, "division by zero", nil)
		}
		return schema.NewTextResult(format(input.A/input.B), false), nil
	case "echo":
		return schema.NewTextResult(string(params.Arguments), false), nil
	}
	return nil, protoschema.NewUnknownTool(params.Name)
}

func format(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// New creates a calculator backend with add, divide and echo tools
func New() *Backend {
	addDescription := "Adds two numbers"
	divideDescription := "Divides a by b"
	return &Backend{tools: []schema.Tool{
		{Name: "add", Description: &addDescription, InputSchema: json.RawMessage(operandsSchema)},
		{Name: "divide", Description: &divideDescription, InputSchema: json.RawMessage(operandsSchema)},
		{Name: "echo", InputSchema: json.RawMessage(`{"type":"object"}`)},
	}}
}
