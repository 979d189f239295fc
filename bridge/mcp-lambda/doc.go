// Command mcp-lambda runs a stdio MCP server that proxies tool calls to a
// JSON-RPC over HTTP backend such as an AWS Lambda function URL.
//
//	mcp-lambda https://abcd1234.lambda-url.us-west-2.on.aws
//	mcp-lambda --url https://example.com/rpc --timeout 10000 --name my-tools
package main
