// Package example contains a self-contained calculator backend and tests that
// demonstrate how the bridge exposes a JSON-RPC over HTTP tool catalog to an
// MCP client.
//
// Run the backend locally and point the bridge at it:
//
//	go run ./example/calculator/backend -p 8080
//	go run ./bridge/mcp-lambda http://localhost:8080
package example
