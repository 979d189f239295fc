// Package conv holds internal value coercion helpers.
//
// AsInt normalizes JSON-RPC request ids, which arrive as float64, json.Number,
// strings or plain integers depending on who decoded them, into an int key.
package conv
