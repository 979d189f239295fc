// Package interceptor observes the raw inbound stdio stream and captures tool
// call arguments before the protocol endpoint parses, validates or coerces them.
//
// The interceptor only ever sees a copy of the stream: bytes delivered to the
// real consumer are neither reordered, delayed beyond the copy, nor modified.
package interceptor

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/mcp-lambda/errs"
	"github.com/viant/mcp-protocol/schema"
)

const maxLoggedLine = 256

// Interceptor splits observed bytes into lines and records tools/call arguments into Cache
type Interceptor struct {
	cache  *Cache
	logger *log.Logger
	mux    sync.Mutex
	buffer bytes.Buffer
}

type (
	message struct {
		Id     interface{}     `json:"id,omitempty"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params,omitempty"`
	}

	callParams struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}
)

// Option configures interceptor
type Option func(i *Interceptor)

// WithLogger sets diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(i *Interceptor) {
		i.logger = logger
	}
}

// Cache returns the argument cache
func (i *Interceptor) Cache() *Cache {
	return i.cache
}

// Write observes a chunk of the inbound stream; it never fails
func (i *Interceptor) Write(chunk []byte) (int, error) {
	i.mux.Lock()
	defer i.mux.Unlock()
	i.buffer.Write(chunk)
	for {
		index := bytes.IndexByte(i.buffer.Bytes(), '\n')
		if index == -1 {
			break
		}
		line := make([]byte, index)
		copy(line, i.buffer.Next(index+1)[:index])
		i.processLine(line)
	}
	if i.buffer.Len() == 0 {
		i.buffer.Reset()
	}
	return len(chunk), nil
}

// Pending returns number of buffered bytes without a terminating newline
func (i *Interceptor) Pending() int {
	i.mux.Lock()
	defer i.mux.Unlock()
	return i.buffer.Len()
}

func (i *Interceptor) processLine(line []byte) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Printf("interceptor: recovered while processing line: %v", r)
		}
	}()
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}
	if line[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(line, &batch); err != nil {
			i.logParseError(line, err)
			return
		}
		for _, item := range batch {
			i.processMessage(item)
		}
		return
	}
	i.processMessage(line)
}

func (i *Interceptor) processMessage(data []byte) {
	msg := &message{}
	if err := json.Unmarshal(data, msg); err != nil {
		i.logParseError(data, err)
		return
	}
	if msg.Method != schema.MethodToolsCall || len(msg.Params) == 0 {
		return
	}
	params := &callParams{}
	if err := json.Unmarshal(msg.Params, params); err != nil || params.Name == "" {
		return
	}
	entry := &Entry{
		Arguments:  params.Arguments,
		RequestID:  msg.Id,
		CaptureID:  uuid.NewString(),
		CapturedAt: time.Now(),
	}
	if replaced := i.cache.Put(params.Name, entry); replaced {
		i.logger.Printf("interceptor: tools/call for '%v' replaced unconsumed arguments (capture %v)", params.Name, entry.CaptureID)
	}
	i.logger.Printf("interceptor: intercepted tools/call for '%v' (request %v, capture %v): %s", params.Name, msg.Id, entry.CaptureID, truncate(params.Arguments))
}

func (i *Interceptor) logParseError(line []byte, err error) {
	parseErr := errs.NewParse("failed to parse line: "+string(truncate(line)), err)
	i.logger.Printf("interceptor: %v", parseErr)
}

// Tap returns a reader delivering r's bytes unchanged while the interceptor observes a copy
func (i *Interceptor) Tap(r io.Reader) io.Reader {
	return io.TeeReader(r, i)
}

func truncate(data []byte) []byte {
	if len(data) <= maxLoggedLine {
		return data
	}
	return append(data[:maxLoggedLine:maxLoggedLine], []byte("...")...)
}

// New creates an interceptor writing captures into cache
func New(cache *Cache, options ...Option) *Interceptor {
	ret := &Interceptor{cache: cache, logger: log.Default()}
	for _, option := range options {
		option(ret)
	}
	if ret.cache == nil {
		ret.cache = NewCache()
	}
	return ret
}
