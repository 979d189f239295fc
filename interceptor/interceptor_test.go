package interceptor

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterceptor() (*Interceptor, *bytes.Buffer) {
	output := &bytes.Buffer{}
	return New(NewCache(), WithLogger(log.New(output, "", 0))), output
}

func TestInterceptor_Write(t *testing.T) {
	var testCases = []struct {
		description string
		chunks      []string
		expect      map[string]string
		pending     int
	}{
		{
			description: "single tools/call line",
			chunks:      []string{`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add","arguments":{"a":1,"b":2}}}` + "\n"},
			expect:      map[string]string{"add": `{"a":1,"b":2}`},
		},
		{
			description: "line split across chunks",
			chunks: []string{
				`{"jsonrpc":"2.0","id":2,"method":"tools/ca`,
				`ll","params":{"name":"echo","argum`,
				`ents":{"text":"hi"}}}` + "\n",
			},
			expect: map[string]string{"echo": `{"text":"hi"}`},
		},
		{
			description: "several lines in one chunk",
			chunks: []string{
				`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n" +
					`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
					`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"add","arguments":{"a":"1"}}}` + "\r\n",
			},
			expect: map[string]string{"add": `{"a":"1"}`},
		},
		{
			description: "incomplete line stays buffered",
			chunks:      []string{`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add"`},
			expect:      map[string]string{},
			pending:     len(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add"`),
		},
		{
			description: "other methods and nameless calls are ignored",
			chunks: []string{
				`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{"name":"add"}}` + "\n" +
					`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"arguments":{}}}` + "\n" +
					`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":[1,2]}` + "\n",
			},
			expect: map[string]string{},
		},
		{
			description: "batch messages",
			chunks: []string{
				`[{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"a","arguments":{"x":1}}},` +
					`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"b","arguments":{"y":2}}}]` + "\n",
			},
			expect: map[string]string{"a": `{"x":1}`, "b": `{"y":2}`},
		},
	}

	for _, testCase := range testCases {
		interceptor, _ := newTestInterceptor()
		for _, chunk := range testCase.chunks {
			n, err := interceptor.Write([]byte(chunk))
			assert.NoError(t, err, testCase.description)
			assert.Equal(t, len(chunk), n, testCase.description)
		}
		assert.Equal(t, len(testCase.expect), interceptor.Cache().Len(), testCase.description)
		for name, arguments := range testCase.expect {
			entry, ok := interceptor.Cache().Get(name)
			if assert.True(t, ok, testCase.description) {
				assert.JSONEq(t, arguments, string(entry.Arguments), testCase.description)
				assert.NotEmpty(t, entry.CaptureID, testCase.description)
			}
		}
		assert.Equal(t, testCase.pending, interceptor.Pending(), testCase.description)
	}
}

func TestInterceptor_MalformedLine(t *testing.T) {
	interceptor, output := newTestInterceptor()
	assert.NotPanics(t, func() {
		n, err := interceptor.Write([]byte("not json\n"))
		assert.NoError(t, err)
		assert.Equal(t, 9, n)
	})
	assert.Equal(t, 0, interceptor.Cache().Len())
	assert.Equal(t, 0, interceptor.Pending())
	assert.Contains(t, output.String(), "failed to parse line: not json")

	// a malformed line does not disturb subsequent lines
	_, _ = interceptor.Write([]byte(`{"method":"tools/call","params":{"name":"add","arguments":{"a":1}}}` + "\n"))
	assert.Equal(t, 1, interceptor.Cache().Len())
}

func TestInterceptor_LastWriteWins(t *testing.T) {
	interceptor, output := newTestInterceptor()
	_, _ = interceptor.Write([]byte(`{"id":1,"method":"tools/call","params":{"name":"add","arguments":{"a":1}}}` + "\n"))
	_, _ = interceptor.Write([]byte(`{"id":2,"method":"tools/call","params":{"name":"add","arguments":{"a":2}}}` + "\n"))

	entry, ok := interceptor.Cache().Take("add")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":2}`, string(entry.Arguments))
	assert.EqualValues(t, 2, entry.RequestID)
	assert.Contains(t, output.String(), "replaced unconsumed arguments")

	_, ok = interceptor.Cache().Get("add")
	assert.False(t, ok)
}

func TestInterceptor_Tap(t *testing.T) {
	interceptor, _ := newTestInterceptor()
	input := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n" +
		`not json` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"add","arguments":{"a":1,"b":2}}}` + "\n"

	data, err := io.ReadAll(interceptor.Tap(strings.NewReader(input)))
	require.NoError(t, err)
	assert.Equal(t, input, string(data))

	entry, ok := interceptor.Cache().Get("add")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(entry.Arguments))
}
