package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const marketService = "market.v1.MarketService"

// healthPeer is a listening health server with per-service statuses.
type healthPeer struct {
	addr   string
	health *health.Server
}

func newHealthPeer(t *testing.T, statuses map[string]grpc_health_v1.HealthCheckResponse_ServingStatus) healthPeer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := gogrpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	for service, status := range statuses {
		healthServer.SetServingStatus(service, status)
	}
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)
	return healthPeer{addr: listener.Addr().String(), health: healthServer}
}

func (p healthPeer) conn(t *testing.T) *gogrpc.ClientConn {
	t.Helper()
	conn, err := gogrpc.NewClient(p.addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWaitForHealth(t *testing.T) {
	statuses := map[string]grpc_health_v1.HealthCheckResponse_ServingStatus{
		"":            grpc_health_v1.HealthCheckResponse_SERVING,
		marketService: grpc_health_v1.HealthCheckResponse_NOT_SERVING,
	}
	tests := []struct {
		name    string
		service string
		wantErr bool
	}{
		{"server", "", false},
		{"service not serving", marketService, true},
		{"unknown service", "other.v1.Service", true},
	}
	peer := newHealthPeer(t, statuses)
	conn := peer.conn(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
			defer cancel()
			err := WaitForHealth(ctx, conn, tc.service, nil)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestWaitForHealthSeesLateServing(t *testing.T) {
	peer := newHealthPeer(t, map[string]grpc_health_v1.HealthCheckResponse_ServingStatus{
		marketService: grpc_health_v1.HealthCheckResponse_NOT_SERVING,
	})
	conn := peer.conn(t)
	time.AfterFunc(200*time.Millisecond, func() {
		peer.health.SetServingStatus(marketService, grpc_health_v1.HealthCheckResponse_SERVING)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var attempts int
	logf := func(string, ...any) { attempts++ }
	if err := WaitForHealth(ctx, conn, marketService, logf); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if attempts < 2 {
		t.Fatalf("attempts logged = %d, want at least 2", attempts)
	}
}

func TestWaitForHealthRejectsNilConn(t *testing.T) {
	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("expected error for nil connection")
	}
}
