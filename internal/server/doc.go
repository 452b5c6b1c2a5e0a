// Package server implements the MCP (Model Context Protocol) server for
// player detection.
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
//   - image_load: Load image and get metadata
//   - players_detect: Run the detection pipeline
//   - players_graph: Complete graph over one team
//   - players_distances: Distances from one player to the other team
//   - players_render: Annotated image as base64 PNG
//   - players_plot: Save a chart of the players
//
// Tool results are returned as pretty-printed JSON in a single text content
// item. Bad arguments yield -32602; load and rendering failures -32000.
//
// # Caching
//
// Decoded images are cached by path for the life of the server. Detection
// is rerun on every call.
package server
