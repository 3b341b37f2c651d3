// Package server exposes the comparison engine over the MCP protocol
// (JSON-RPC 2.0, one message per line on stdin/stdout).
//
// The tool surface covers three levels of "are these the same photo":
// pixel-exact scores and tolerance equality from the compare package,
// palette-level similarity that ignores layout, and (in cgo builds)
// text-level equality via OCR. File-based tools load through a shared
// ImageCache so repeated comparisons against the same photo decode once.
//
// Protocol errors use the standard JSON-RPC codes: -32601 for unknown
// methods, -32602 for bad parameters, and -32000 for tool execution
// failures, with the underlying error message in the data field.
package server
