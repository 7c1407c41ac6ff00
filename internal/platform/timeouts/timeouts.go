// Package timeouts defines the timeout constants shared by dicebag commands
// and services.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the dice service.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single roll or parse call against the dice service.
const GRPCRequest = 2 * time.Second

// ReadHeader limits how long the MCP HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// Script caps the wall-clock time of one Lua script run.
const Script = 10 * time.Second
