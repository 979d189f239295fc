package server

import (
	"context"

	"github.com/viant/jsonrpc"
)

type requestIDKey struct{}

type activeContext struct {
	context.Context
	context.CancelFunc
}

func newActiveContext(ctx context.Context, cancel context.CancelFunc, request *jsonrpc.Request) (*activeContext, context.Context) {
	ctx = context.WithValue(ctx, requestIDKey{}, request.Id)
	return &activeContext{
		Context:    ctx,
		CancelFunc: cancel,
	}, ctx
}

// RequestID returns id of the client request being served by ctx
func RequestID(ctx context.Context) (interface{}, bool) {
	value := ctx.Value(requestIDKey{})
	return value, value != nil
}
