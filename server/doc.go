// Package server provides the local MCP tool endpoint.
//
// Tools are registered with a validator.Spec and a ToolHandler; the endpoint
// answers initialize, ping, tools/list, tools/call and logging/setLevel, checks
// tool arguments against the registered rules before the handler runs, and reports handler
// failures as tool error results.
//
//	s, _ := server.New(server.WithImplementation(schema.Implementation{Name: "bridge", Version: "1.0.0"}))
//	_ = s.RegisterTool(tool, spec, handler)
//	log.Fatal(s.Stdio(ctx).ListenAndServe())
package server
