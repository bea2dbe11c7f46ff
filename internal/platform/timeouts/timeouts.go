// Package timeouts defines shared timeout constants for marketplace processes.
package timeouts

import "time"

// GRPCDial caps the wait for a gRPC peer to report healthy.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single marketctl request.
const GRPCRequest = 5 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful
// shutdown.
const Shutdown = 5 * time.Second

// FeedWrite bounds a single websocket frame write to a slow subscriber.
const FeedWrite = 2 * time.Second
