// Package bridge exposes tools of a remote JSON-RPC over HTTP backend to an MCP
// client speaking over stdio.
//
// On start the bridge fetches the backend tool catalog (tools/list), registers
// every tool with the local endpoint and then forwards each tools/call to the
// backend, relaying its result or error. When interception is enabled the raw
// tool arguments are captured from stdin before the endpoint decodes them and are
// forwarded in place of the decoded ones.
//
// Configuration precedence: command line flags, environment variables, config
// file (-c, any afs URL, yaml or json) and finally defaults.
package bridge
