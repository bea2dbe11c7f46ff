// Package main is the operator command line for the market service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	marketctl "github.com/louisbranch/nftmarket/internal/cmd/marketctl"
	entrypoint "github.com/louisbranch/nftmarket/internal/platform/cmd"
	"github.com/louisbranch/nftmarket/internal/platform/config"
)

func main() {
	cfg, args, err := marketctl.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMarketctl, func(ctx context.Context) error {
		return marketctl.Run(ctx, cfg, args, os.Stdout)
	})
	if err != nil {
		config.Exitf("marketctl: %v", err)
	}
}
