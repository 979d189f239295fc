package server

import (
	"context"
	"fmt"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-lambda/schema"
	"github.com/viant/mcp-lambda/validator"
	protoschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcp-protocol/syncmap"
)

// Server represents local MCP tool endpoint
type Server struct {
	activeContexts *syncmap.Map[int, *activeContext]
	info           protoschema.Implementation
	tools          *registry

	instructions    *string
	protocolVersion string
	loggerName      string
	stdioOptions    []stdio.Option
}

// RegisterTool registers tool with its argument spec and handler, names have to be unique and non empty
func (s *Server) RegisterTool(tool schema.Tool, spec validator.Spec, handler ToolHandler) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name was empty")
	}
	if handler == nil {
		return fmt.Errorf("tool %v: handler was nil", tool.Name)
	}
	return s.tools.add(&registeredTool{Tool: tool, spec: spec, handler: handler})
}

// Tools returns registered tools in registration order
func (s *Server) Tools() []schema.Tool {
	return s.tools.list()
}

// Implementation returns server implementation
func (s *Server) Implementation() protoschema.Implementation {
	return s.info
}

// Stdio returns a server exchanging newline delimited JSON-RPC messages over os.Stdin and os.Stdout
func (s *Server) Stdio(ctx context.Context) *stdio.Server {
	return stdio.New(ctx, s.NewHandler, s.stdioOptions...)
}

func (s *Server) cancelOperation(id int) {
	if active, ok := s.activeContexts.Get(id); ok {
		active.CancelFunc()
		s.activeContexts.Delete(id)
	}
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

func (s *Server) newHandler(ctx context.Context, transport transport.Transport) *Handler {
	ret := &Handler{
		Server:   s,
		Notifier: transport,
	}
	ret.Logger = NewLogger(s.loggerName, &ret.loggingLevel, ret.Notifier)
	return ret
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		info: protoschema.Implementation{
			Name:    "MCP",
			Version: "0.1",
		},
		loggerName:      "server",
		protocolVersion: protoschema.LatestProtocolVersion,
		activeContexts:  syncmap.NewMap[int, *activeContext](),
		tools:           newRegistry(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
