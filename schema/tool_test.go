package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolDescriptor_UnmarshalJSON(t *testing.T) {
	var testCases = []struct {
		description     string
		input           string
		expectSchema    bool
		expectAdvertise string
	}{
		{
			description:     "declared schema kept verbatim",
			input:           `{"name":"add","inputSchema":{"type":"object","properties":{"a":{"type":"number"}},"x-extra":1}}`,
			expectSchema:    true,
			expectAdvertise: `{"type":"object","properties":{"a":{"type":"number"}},"x-extra":1}`,
		},
		{
			description:     "absent schema",
			input:           `{"name":"add"}`,
			expectAdvertise: `{"type":"object"}`,
		},
		{
			description:     "null schema",
			input:           `{"name":"add","inputSchema":null}`,
			expectAdvertise: `{"type":"object"}`,
		},
		{
			description:     "undecodable rules",
			input:           `{"name":"add","inputSchema":{"type":"object","required":true}}`,
			expectSchema:    true,
			expectAdvertise: `{"type":"object","required":true}`,
		},
	}
	for _, testCase := range testCases {
		descriptor := &ToolDescriptor{}
		require.NoError(t, json.Unmarshal([]byte(testCase.input), descriptor), testCase.description)
		assert.Equal(t, "add", descriptor.Name, testCase.description)
		assert.Equal(t, testCase.expectSchema, descriptor.InputSchema != nil, testCase.description)
		tool := descriptor.Tool()
		assert.Equal(t, testCase.expectAdvertise, string(tool.InputSchema), testCase.description)
	}
}

func TestNewCallToolRequestParams(t *testing.T) {
	var testCases = []struct {
		description string
		arguments   interface{}
		expect      string
	}{
		{description: "raw arguments", arguments: json.RawMessage(`{"n":12345678901234567890}`), expect: `{"name":"t","arguments":{"n":12345678901234567890}}`},
		{description: "map arguments", arguments: map[string]interface{}{"a": 1}, expect: `{"name":"t","arguments":{"a":1}}`},
		{description: "no arguments", arguments: nil, expect: `{"name":"t"}`},
	}
	for _, testCase := range testCases {
		params, err := NewCallToolRequestParams("t", testCase.arguments)
		require.NoError(t, err, testCase.description)
		data, err := json.Marshal(params)
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, string(data), testCase.description)
	}
}

func TestNewTextResult(t *testing.T) {
	data, err := json.Marshal(NewTextResult("boom", true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[{"type":"text","text":"boom"}],"isError":true}`, string(data))

	data, err = json.Marshal(NewTextResult("ok", false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":[{"type":"text","text":"ok"}]}`, string(data))
}
