// Package server implements the MCP (Model Context Protocol) server for the
// placeholder asset generators.
//
// The server lets an MCP client (an editor or agent working on the game)
// create and check placeholder sprites and sounds without running the CLI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Asset tree:
//   - asset_list: Show the manifest
//   - asset_generate: Write sprites and sounds to disk
//
// Raster:
//   - png_encode: Encode a solid or placeholder PNG, returned as base64
//   - png_inspect: Chunk listing, CRC check and renderability report
//
// Audio:
//   - tone_generate: Sine-tone WAV, returned as base64
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32601: Method not found
//   - -32602: Invalid params (malformed tools/call parameters)
//   - -32000: Tool execution failed (bad dimensions, unknown asset, I/O error)
//
// # Logging
//
// Protocol-level problems are logged with the standard log package. The
// command sends log output to stderr so stdout carries only protocol traffic.
package server
