package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthPollStart   = 100 * time.Millisecond
	healthPollMax     = time.Second
	healthCallTimeout = time.Second
)

// WaitForHealth polls the standard health service, doubling the interval
// between attempts, until service reports SERVING or ctx ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return errors.New("gRPC connection is not configured")
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	client := grpc_health_v1.NewHealthClient(conn)

	wait := healthPollStart
	for attempt := 1; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, healthCallTimeout)
		resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		switch {
		case err != nil:
			logf("health %q attempt %d: %v", service, attempt, err)
		case resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("health %q SERVING after %d attempt(s)", service, attempt)
			return nil
		default:
			logf("health %q attempt %d: %s", service, attempt, resp.GetStatus())
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health %q: %w", service, ctx.Err())
		case <-time.After(wait):
		}
		wait = min(wait*2, healthPollMax)
	}
}
