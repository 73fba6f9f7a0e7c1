// Package server implements the MCP (Model Context Protocol) server for the
// cemetery detector.
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
//   - image_info: dimensions, format, file size and dominant colors
//   - cemetery_score: score one image and report its six features
//   - cemetery_compare: score two images and name the stronger one
//   - cemetery_rank: rank files and directories of images by score
//   - cemetery_feature_map: render an intermediate plane as PNG
//
// # Response Format
//
// Tool results are JSON-encoded and wrapped in MCP's content structure:
//
//	{
//	  "content": [{"type": "text", "text": "{...JSON result...}"}]
//	}
//
// # Error Handling
//
// Errors follow JSON-RPC 2.0 conventions:
//   - -32601: Method not found
//   - -32602: Invalid params
//   - -32000: Tool execution failed; data carries the error category
//     (load, decode, computation, validation) and its details
//
// # Thread Safety
//
// Requests are handled one at a time. The analyzer itself holds no mutable
// state, and cemetery_rank fans out across its own worker pool.
package server
