package schema

import (
	"bytes"
	"encoding/json"

	protoschema "github.com/viant/mcp-protocol/schema"
)

type (
	// ToolDescriptor describes a tool as listed by the backend
	ToolDescriptor struct {
		Name        string  `json:"name"`
		Description *string `json:"description,omitempty"`
		InputSchema *Schema `json:"inputSchema,omitempty"`
		// RawInputSchema keeps the declared schema verbatim for advertising
		RawInputSchema json.RawMessage `json:"-"`
	}

	// ListToolsResult represents tools/list result (for both the backend and the local endpoint)
	ListToolsResult struct {
		Tools []Tool `json:"tools"`
	}

	// Tool represents a tool advertised to the MCP client
	Tool struct {
		Name        string          `json:"name"`
		Description *string         `json:"description,omitempty"`
		InputSchema json.RawMessage `json:"inputSchema"`
	}

	// CallToolRequestParams represents tools/call params
	CallToolRequestParams struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}
)

var emptyObjectSchema = json.RawMessage(`{"type":"object"}`)

// UnmarshalJSON decodes descriptor and retains raw input schema
func (d *ToolDescriptor) UnmarshalJSON(data []byte) error {
	type descriptor ToolDescriptor
	aux := &struct {
		*descriptor
		InputSchema json.RawMessage `json:"inputSchema,omitempty"`
	}{descriptor: (*descriptor)(d)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	d.InputSchema = nil
	d.RawInputSchema = nil
	raw := bytes.TrimSpace(aux.InputSchema)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	d.RawInputSchema = append(json.RawMessage{}, raw...)
	declared := &Schema{}
	if err := json.Unmarshal(raw, declared); err != nil {
		// keep advertising the declared schema, without property rules
		declared = &Schema{}
	}
	d.InputSchema = declared
	return nil
}

// Tool converts descriptor to advertised tool, the client always receives an object schema
func (d *ToolDescriptor) Tool() Tool {
	ret := Tool{Name: d.Name, Description: d.Description, InputSchema: d.RawInputSchema}
	if len(ret.InputSchema) == 0 {
		ret.InputSchema = emptyObjectSchema
	}
	return ret
}

// NewCallToolRequestParams creates tools/call params from any argument value
func NewCallToolRequestParams(name string, arguments interface{}) (*CallToolRequestParams, error) {
	ret := &CallToolRequestParams{Name: name}
	if arguments == nil {
		return ret, nil
	}
	if raw, ok := arguments.(json.RawMessage); ok {
		ret.Arguments = raw
		return ret, nil
	}
	data, err := json.Marshal(arguments)
	if err != nil {
		return nil, err
	}
	ret.Arguments = data
	return ret, nil
}

// NewTextResult creates a single text content tool result, isError is omitted unless set
func NewTextResult(text string, isError bool) *protoschema.CallToolResult {
	ret := &protoschema.CallToolResult{
		Content: []protoschema.CallToolResultContentElem{protoschema.TextContent{Type: "text", Text: text}},
	}
	if isError {
		ret.IsError = &isError
	}
	return ret
}
