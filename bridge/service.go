package bridge

import (
	"context"
	"io"
	"log"
	"os"

	stdiosrv "github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-lambda/interceptor"
	"github.com/viant/mcp-lambda/rpc"
	"github.com/viant/mcp-lambda/server"
)

// Service bridges the local MCP endpoint with the backend
type Service struct {
	config *Config
	client *rpc.Client
	cache  *interceptor.Cache
	server *server.Server
	logger *log.Logger
	input  io.Reader
}

// Option represents service option
type Option func(s *Service)

// WithClient sets backend client
func WithClient(client *rpc.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithCache sets argument cache shared with the interceptor
func WithCache(cache *interceptor.Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithLogger sets diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithInput sets the stream the endpoint reads client messages from, os.Stdin by default
func WithInput(input io.Reader) Option {
	return func(s *Service) {
		s.input = input
	}
}

// Server returns local MCP endpoint
func (s *Service) Server() *server.Server {
	return s.server
}

// Cache returns argument cache
func (s *Service) Cache() *interceptor.Cache {
	return s.cache
}

// Stdio returns stdio server, Initialize has to be called first
func (s *Service) Stdio(ctx context.Context) *stdiosrv.Server {
	return s.server.Stdio(ctx)
}

// Serve connects the endpoint to stdio and blocks until the input stream ends
func (s *Service) Serve(ctx context.Context) error {
	s.logger.Printf("connecting server to transport...")
	srv := s.Stdio(ctx)
	s.logger.Printf("MCP server connected and ready to receive requests")
	return srv.ListenAndServe()
}

// New creates a bridge service
func New(ctx context.Context, config *Config, options ...Option) (*Service, error) {
	ret := &Service{config: config}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = log.Default()
	}
	if ret.cache == nil {
		ret.cache = interceptor.NewCache()
	}
	if ret.client == nil {
		ret.client = rpc.New(config.URL,
			rpc.WithTimeout(config.Timeout),
			rpc.WithTracing(config.Trace),
			rpc.WithLogger(ret.logger))
	}
	input := ret.input
	if input == nil {
		input = os.Stdin
	}
	if config.Intercept {
		input = interceptor.New(ret.cache, interceptor.WithLogger(ret.logger)).Tap(input)
	}
	var err error
	ret.server, err = server.New(
		server.WithImplementation(config.Info),
		server.WithInstructions(config.Description),
		server.WithLoggerName(config.Info.Name),
		server.WithStdioOptions(stdiosrv.WithReader(io.NopCloser(input))),
	)
	if err != nil {
		return nil, err
	}
	return ret, nil
}
