package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-lambda/errs"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTimeout is used when no timeout option is supplied
	DefaultTimeout = 30 * time.Second
	tracerName     = "github.com/viant/mcp-lambda/rpc"
)

type notificationEnvelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Client sends JSON-RPC requests to a single HTTP endpoint
type Client struct {
	url        string
	timeout    time.Duration
	headers    http.Header
	httpClient *http.Client
	transport  http.RoundTripper
	traced     bool
	tracer     trace.Tracer
	logger     *log.Logger
	seq        atomic.Int64
}

// URL returns backend URL
func (c *Client) URL() string {
	return c.url
}

// Timeout returns per request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Call sends method with params (nil params are sent as an empty object).
// A backend reported error is returned in Response.Error, not as error.
func (c *Client) Call(ctx context.Context, method string, params interface{}) (*jsonrpc.Response, error) {
	ctx, span := c.tracer.Start(ctx, "rpc.Call", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("rpc.system", "jsonrpc"), attribute.String("rpc.method", method)))
	defer span.End()

	if params == nil {
		params = map[string]interface{}{}
	}
	request, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errs.NewTransport(fmt.Sprintf("failed to encode %v request", method), err)
	}
	request.Id = c.nextID()

	c.logger.Printf("sending request %v (id: %v) to backend: %s", method, request.Id, request.Params)
	response, err := c.Send(ctx, request)
	if err != nil {
		c.logger.Printf("error in JSON-RPC call (%v): %v", method, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if response.Error != nil {
		span.SetAttributes(attribute.Int("rpc.jsonrpc.error_code", response.Error.Code))
		span.SetStatus(codes.Error, response.Error.Message)
		c.logger.Printf("backend response for %v: error %v: %v", method, response.Error.Code, response.Error.Message)
	} else {
		c.logger.Printf("backend response for %v: %s", method, truncate(response.Result))
	}
	return response, nil
}

// Send posts request and decodes JSON-RPC response
func (c *Client) Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errs.NewTransport("failed to encode request", err)
	}
	status, body, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}
	response, decodeErr := decodeResponse(body)
	if status < 200 || status > 299 {
		if decodeErr != nil || (response.Error == nil && len(response.Result) == 0) {
			return nil, errs.NewTransport("error in JSON-RPC call", fmt.Errorf("backend responded with status %d: %s", status, truncate(body)))
		}
		return response, nil
	}
	if decodeErr != nil {
		return nil, errs.NewTransport("invalid JSON-RPC response", decodeErr)
	}
	return response, nil
}

// Notify posts notification, response body is ignored
func (c *Client) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	payload, err := json.Marshal(&notificationEnvelope{Jsonrpc: jsonrpc.Version, Method: notification.Method, Params: notification.Params})
	if err != nil {
		return errs.NewTransport("failed to encode notification", err)
	}
	status, body, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return errs.NewTransport("error in JSON-RPC notification", fmt.Errorf("backend responded with status %d: %s", status, truncate(body)))
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, errs.NewTransport("error in JSON-RPC call", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("jsonrpc", jsonrpc.Version)
	for key, values := range c.headers {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return 0, nil, errs.NewTransport("error in JSON-RPC call", err)
	}
	defer httpResponse.Body.Close()
	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return 0, nil, errs.NewTransport("error in JSON-RPC call", err)
	}
	return httpResponse.StatusCode, body, nil
}

func decodeResponse(body []byte) (*jsonrpc.Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("expected JSON object, got: %s", truncate(trimmed))
	}
	response := &jsonrpc.Response{}
	if err := json.Unmarshal(trimmed, response); err != nil {
		return nil, err
	}
	return response, nil
}

// nextID returns a correlation id distinct within the process
func (c *Client) nextID() int {
	return int(c.seq.Add(1))
}

func truncate(data []byte) []byte {
	const limit = 512
	if len(data) <= limit {
		return data
	}
	return append(data[:limit:limit], []byte("...")...)
}

// New creates a client for backend URL
func New(URL string, options ...Option) *Client {
	ret := &Client{
		url:     URL,
		timeout: DefaultTimeout,
		headers: http.Header{},
		logger:  log.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	ret.seq.Store(int64(rand.Intn(10000)))
	if ret.httpClient == nil {
		roundTripper := ret.transport
		if roundTripper == nil {
			roundTripper = http.DefaultTransport
		}
		if ret.traced {
			roundTripper = otelhttp.NewTransport(roundTripper)
		}
		ret.httpClient = &http.Client{Transport: roundTripper, Timeout: ret.timeout}
	}
	ret.tracer = otel.Tracer(tracerName)
	return ret
}

var _ transport.Transport = (*Client)(nil)
