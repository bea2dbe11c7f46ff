// Package grpc holds client-side connection helpers for marketplace services.
package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/nftmarket/internal/platform/timeouts"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	DialStageConnect DialStage = "connect"
	DialStageHealth  DialStage = "health"
)

// DialError reports which stage of Dial failed for Addr.
type DialError struct {
	Addr  string
	Stage DialStage
	Err   error
}

func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	return fmt.Sprintf("gRPC %s %s: %v", e.Stage, e.Addr, e.Err)
}

func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DialConfig describes a peer to connect to.
type DialConfig struct {
	Addr string
	// Service is the health service name to wait on. Empty checks the
	// server as a whole.
	Service string
	// Timeout bounds the health wait. Zero uses timeouts.GRPCDial.
	Timeout time.Duration
	Logf    func(string, ...any)
	// Options replace the plaintext, trace-propagating defaults.
	Options []gogrpc.DialOption
}

// Dial connects to cfg.Addr and returns once cfg.Service reports SERVING.
// The connection is closed when the wait fails.
func Dial(ctx context.Context, cfg DialConfig) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.GRPCDial
	}
	opts := cfg.Options
	if len(opts) == 0 {
		opts = []gogrpc.DialOption{
			gogrpc.WithTransportCredentials(insecure.NewCredentials()),
			gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		}
	}

	conn, err := gogrpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, &DialError{Addr: cfg.Addr, Stage: DialStageConnect, Err: err}
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := WaitForHealth(waitCtx, conn, cfg.Service, cfg.Logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Addr: cfg.Addr, Stage: DialStageHealth, Err: err}
	}
	return conn, nil
}
