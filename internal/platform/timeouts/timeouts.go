// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the round service.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single round RPC issued by roundctl or the MCP bridge.
const GRPCRequest = 5 * time.Second

// Shutdown limits how long the gRPC server drains in-flight calls before
// forcing a stop.
const Shutdown = 5 * time.Second
