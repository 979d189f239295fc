// Package errs defines the bridge error taxonomy.
//
// Startup kinds (Configuration, Catalog) are fatal; per-call kinds (Transport,
// RemoteTool, ProtocolViolation) are reported back to the calling client as the
// failure of that call; Parse errors never leave the interceptor.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies bridge errors
type Kind int

const (
	Unknown Kind = iota
	Configuration
	Catalog
	Transport
	RemoteTool
	ProtocolViolation
	Parse
)

var kindNames = map[Kind]string{
	Unknown:           "unknown",
	Configuration:     "configuration",
	Catalog:           "catalog",
	Transport:         "transport",
	RemoteTool:        "remote tool",
	ProtocolViolation: "protocol violation",
	Parse:             "parse",
}

// String returns kind name
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// Fatal returns true for kinds that abort startup
func (k Kind) Fatal() bool {
	return k == Configuration || k == Catalog
}

// Error represents a classified bridge error
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	// Code carries the backend error code for RemoteTool errors
	Code int
}

// Error returns error message
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil && e.Message != "" {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind
func (e *Error) Is(target error) bool {
	var candidate *Error
	if !errors.As(target, &candidate) || candidate == nil {
		return false
	}
	return candidate.Kind == e.Kind && candidate.Message == "" && candidate.Cause == nil
}

// New creates a classified error
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Newf creates a classified error with formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the outermost classified error, or Unknown
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) && classified != nil {
		return classified.Kind
	}
	return Unknown
}

// Is returns true if err (or any wrapped error) has the given kind
func Is(err error, kind Kind) bool {
	for err != nil {
		var classified *Error
		if !errors.As(err, &classified) || classified == nil {
			return false
		}
		if classified.Kind == kind {
			return true
		}
		err = classified.Cause
	}
	return false
}

// NewConfiguration creates a configuration error
func NewConfiguration(message string, cause error) *Error {
	return New(Configuration, message, cause)
}

// NewCatalog creates a catalog error
func NewCatalog(message string, cause error) *Error {
	return New(Catalog, message, cause)
}

// NewTransport creates a transport error
func NewTransport(message string, cause error) *Error {
	return New(Transport, message, cause)
}

// NewRemoteTool creates a remote tool error carrying the backend message verbatim
func NewRemoteTool(code int, message string) *Error {
	return &Error{Kind: RemoteTool, Message: message, Code: code}
}

// NewProtocolViolation creates a protocol violation error
func NewProtocolViolation(message string) *Error {
	return New(ProtocolViolation, message, nil)
}

// NewParse creates a parse error
func NewParse(message string, cause error) *Error {
	return New(Parse, message, cause)
}
