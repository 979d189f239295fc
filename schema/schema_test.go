package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes_UnmarshalJSON(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      Types
	}{
		{description: "single type", input: `"string"`, expect: Types{"string"}},
		{description: "alternation", input: `["string","null"]`, expect: Types{"string", "null"}},
		{description: "null", input: `null`, expect: nil},
		{description: "unsupported", input: `7`, expect: nil},
		{description: "mixed list", input: `["string",5]`, expect: nil},
	}
	for _, testCase := range testCases {
		var actual Types
		err := json.Unmarshal([]byte(testCase.input), &actual)
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestTypes_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Types{"integer"})
	require.NoError(t, err)
	assert.Equal(t, `"integer"`, string(data))

	data, err = json.Marshal(Types{"integer", "null"})
	require.NoError(t, err)
	assert.Equal(t, `["integer","null"]`, string(data))
}

func TestSchema_Decode(t *testing.T) {
	input := `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "user name"},
			"tags": {"type": "array", "items": {"type": "string"}},
			"mode": {"type": ["string", "null"], "enum": ["fast", "slow"]},
			"odd": {"type": {"$ref": "#/x"}},
			"mixed": {"type": ["string", 5]}
		},
		"required": ["name"]
	}`
	actual := &Schema{}
	require.NoError(t, json.Unmarshal([]byte(input), actual))
	assert.Equal(t, "object", actual.Type.First())
	assert.True(t, actual.IsRequired("name"))
	assert.False(t, actual.IsRequired("tags"))
	require.Len(t, actual.Properties, 5)
	assert.Equal(t, "user name", actual.Properties["name"].Description)
	assert.Equal(t, "string", actual.Properties["tags"].Items.Type.First())
	assert.EqualValues(t, Types{"string", "null"}, actual.Properties["mode"].Type)
	assert.Len(t, actual.Properties["mode"].Enum, 2)
	assert.Equal(t, "", actual.Properties["odd"].Type.First())
	assert.Equal(t, "", actual.Properties["mixed"].Type.First())
	assert.True(t, actual.Properties["mode"].Type.Nullable())
	assert.False(t, actual.Properties["name"].Type.Nullable())
}
