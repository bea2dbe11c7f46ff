// Package server wires the marketplace runtime: journal, gateway, gRPC API
// and the explorer HTTP surface.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/nftmarket/internal/platform/config"
	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/timeouts"
	marketgrpc "github.com/louisbranch/nftmarket/internal/services/market/api/grpc/market"
	"github.com/louisbranch/nftmarket/internal/services/market/api/http/explorer"
	"github.com/louisbranch/nftmarket/internal/services/market/auth"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/auction"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/ledger"
	"github.com/louisbranch/nftmarket/internal/services/market/feed"
	"github.com/louisbranch/nftmarket/internal/services/market/gateway"
	marketsqlite "github.com/louisbranch/nftmarket/internal/services/market/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath   string `env:"NFTMARKET_MARKET_DB_PATH"`
	HTTPAddr string `env:"NFTMARKET_MARKET_HTTP_ADDR" envDefault:":8096"`

	Admin    string `env:"NFTMARKET_ADMIN_ADDRESS"`
	Operator string `env:"NFTMARKET_OPERATOR_ADDRESS"`
	Gateway  string `env:"NFTMARKET_GATEWAY_ADDRESS"`
	Platform string `env:"NFTMARKET_PLATFORM_ADDRESS"`
	Network  string `env:"NFTMARKET_NETWORK_ADDRESS"`

	PlatformPrimary   int `env:"NFTMARKET_PLATFORM_PRIMARY_PERCENTAGE" envDefault:"10"`
	NetworkPrimary    int `env:"NFTMARKET_NETWORK_PRIMARY_PERCENTAGE" envDefault:"3"`
	ArtistPrimary     int `env:"NFTMARKET_ARTIST_PRIMARY_PERCENTAGE" envDefault:"87"`
	PlatformSecondary int `env:"NFTMARKET_PLATFORM_SECONDARY_PERCENTAGE" envDefault:"2"`
	NetworkSecondary  int `env:"NFTMARKET_NETWORK_SECONDARY_PERCENTAGE" envDefault:"3"`
	ArtistSecondary   int `env:"NFTMARKET_ARTIST_SECONDARY_PERCENTAGE" envDefault:"10"`

	RefusedPayees []string `env:"NFTMARKET_REFUSED_PAYEES" envSeparator:","`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "market.db")
	}
	if strings.TrimSpace(cfg.Operator) == "" {
		cfg.Operator = cfg.Admin
	}
	return cfg, nil
}

// identities are the fixed addresses the process runs with.
type identities struct {
	admin    core.Address
	operator core.Address
	self     core.Address
	fees     auction.FeeConfig
	policy   ledger.PayeePolicy
}

func (e serverEnv) identities() (identities, error) {
	parse := func(name, raw string) (core.Address, error) {
		if strings.TrimSpace(raw) == "" {
			return "", fmt.Errorf("%s is required", name)
		}
		addr, err := core.ParseAddress(raw)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return addr, nil
	}
	var ids identities
	var err error
	if ids.admin, err = parse("NFTMARKET_ADMIN_ADDRESS", e.Admin); err != nil {
		return identities{}, err
	}
	if ids.operator, err = parse("NFTMARKET_OPERATOR_ADDRESS", e.Operator); err != nil {
		return identities{}, err
	}
	if ids.self, err = parse("NFTMARKET_GATEWAY_ADDRESS", e.Gateway); err != nil {
		return identities{}, err
	}
	platform, err := parse("NFTMARKET_PLATFORM_ADDRESS", e.Platform)
	if err != nil {
		return identities{}, err
	}
	network, err := parse("NFTMARKET_NETWORK_ADDRESS", e.Network)
	if err != nil {
		return identities{}, err
	}
	ids.fees = auction.FeeConfig{
		Platform:          platform,
		Network:           network,
		PlatformPrimary:   core.Percent(e.PlatformPrimary),
		NetworkPrimary:    core.Percent(e.NetworkPrimary),
		ArtistPrimary:     core.Percent(e.ArtistPrimary),
		PlatformSecondary: core.Percent(e.PlatformSecondary),
		NetworkSecondary:  core.Percent(e.NetworkSecondary),
		ArtistSecondary:   core.Percent(e.ArtistSecondary),
	}
	if len(e.RefusedPayees) > 0 {
		refused, err := ledger.NewRefusedPayees(e.RefusedPayees)
		if err != nil {
			return identities{}, fmt.Errorf("NFTMARKET_REFUSED_PAYEES: %w", err)
		}
		ids.policy = refused
	}
	return ids, nil
}

// Server hosts the marketplace gRPC API, the explorer HTTP API and the
// journal lifecycle.
type Server struct {
	listener     net.Listener
	httpListener net.Listener
	grpcServer   *grpc.Server
	httpServer   *http.Server
	health       *health.Server
	store        *marketsqlite.Store
	gateway      *gateway.Gateway
}

// New creates a configured market server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured market server for the provided gRPC
// address. The explorer address comes from NFTMARKET_MARKET_HTTP_ADDR.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}
	ids, err := env.identities()
	if err != nil {
		return nil, err
	}
	verifier, err := auth.LoadVerifierConfigFromEnv(time.Now)
	if err != nil {
		return nil, err
	}

	store, err := openMarketStore(env.DBPath)
	if err != nil {
		return nil, err
	}
	hub := feed.NewHub(0)
	gw, err := gateway.New(gateway.Config{
		Admin:     ids.admin,
		Operator:  ids.operator,
		Self:      ids.self,
		Fees:      ids.fees,
		Policy:    ids.policy,
		Journal:   store,
		Publisher: hub,
	})
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	ctx := context.Background()
	replayed, err := gw.Replay(ctx)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("replay journal: %w", err)
	}
	if err := gw.Bootstrap(ctx, ids.admin); err != nil && apperrors.CodeOf(err) != apperrors.CodeCallerAlreadyConfigured {
		closeStore(store)
		return nil, fmt.Errorf("bootstrap gateway: %w", err)
	}
	if !gw.Configured() {
		closeStore(store)
		return nil, fmt.Errorf("gateway %s is not the configured market caller", ids.self)
	}
	log.Printf("market journal replayed %d events from %s", replayed, env.DBPath)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	httpListener, err := net.Listen("tcp", env.HTTPAddr)
	if err != nil {
		_ = listener.Close()
		closeStore(store)
		return nil, fmt.Errorf("listen on %s: %w", env.HTTPAddr, err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(marketgrpc.UnaryServerInterceptor(verifier, nil)),
	)
	healthServer := health.NewServer()
	marketgrpc.RegisterMarketServiceServer(grpcServer, marketgrpc.NewService(gw))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(marketgrpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	httpServer := &http.Server{
		Handler:           explorer.NewHandler(gw, hub),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		listener:     listener,
		httpListener: httpListener,
		grpcServer:   grpcServer,
		httpServer:   httpServer,
		health:       healthServer,
		store:        store,
		gateway:      gw,
	}, nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// HTTPAddr returns the explorer listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Run creates and serves a market server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs both listeners until context cancellation or the first
// listener failure.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("market gRPC listening at %v", s.listener.Addr())
	log.Printf("market explorer listening at %v", s.httpListener.Addr())
	serveErr := make(chan error, 2)
	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr <- fmt.Errorf("serve gRPC: %w", err)
			return
		}
		serveErr <- nil
	}()
	go func() {
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("serve HTTP: %w", err)
			return
		}
		serveErr <- nil
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}
	s.shutdown()
	return err
}

func (s *Server) shutdown() {
	if s.health != nil {
		s.health.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown market explorer: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		s.grpcServer.Stop()
	}
}

// Close releases market server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	closeStore(s.store)
	s.store = nil
}

func openMarketStore(path string) (*marketsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := marketsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market sqlite store: %w", err)
	}
	return store, nil
}

func closeStore(store *marketsqlite.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Printf("close market store: %v", err)
	}
}
