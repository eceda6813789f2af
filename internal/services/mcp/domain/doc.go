// Package domain exposes read-only views of the round service as MCP tools
// and resources.
//
// Handlers call the round gRPC API with a bounded timeout and return
// structured results that MCP clients can render.
package domain
