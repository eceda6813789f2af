// Package service wires the MCP protocol transport to the round domain
// handlers.
package service
