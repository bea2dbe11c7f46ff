// Package marketctl implements the operator command line for the market
// service: key and token utilities plus one subcommand per RPC.
package marketctl

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/nftmarket/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/nftmarket/internal/platform/grpc"
	"github.com/louisbranch/nftmarket/internal/platform/timeouts"
	marketgrpc "github.com/louisbranch/nftmarket/internal/services/market/api/grpc/market"
	"github.com/louisbranch/nftmarket/internal/services/market/auth"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Config holds marketctl configuration shared by every subcommand.
type Config struct {
	Addr    string        `env:"NFTMARKET_MARKET_ADDR" envDefault:"localhost:8095"`
	Token   string        `env:"NFTMARKET_CALLER_TOKEN"`
	Locale  string        `env:"NFTMARKET_LOCALE"`
	Timeout time.Duration `env:"NFTMARKET_MARKETCTL_TIMEOUT"`
}

// MarketClient is the subset of the market RPC client used by marketctl.
type MarketClient interface {
	MintToken(ctx context.Context, in *marketgrpc.MintTokenRequest, opts ...grpc.CallOption) (*marketgrpc.MintTokenResponse, error)
	GetToken(ctx context.Context, in *marketgrpc.GetTokenRequest, opts ...grpc.CallOption) (*marketgrpc.GetTokenResponse, error)
	GetTotalNumberOfNft(ctx context.Context, in *marketgrpc.GetTotalNumberOfNftRequest, opts ...grpc.CallOption) (*marketgrpc.GetTotalNumberOfNftResponse, error)
	Approve(ctx context.Context, in *marketgrpc.ApproveRequest, opts ...grpc.CallOption) (*marketgrpc.ApproveResponse, error)
	StartAuction(ctx context.Context, in *marketgrpc.StartAuctionRequest, opts ...grpc.CallOption) (*marketgrpc.StartAuctionResponse, error)
	SetCollaborators(ctx context.Context, in *marketgrpc.SetCollaboratorsRequest, opts ...grpc.CallOption) (*marketgrpc.SetCollaboratorsResponse, error)
	Bid(ctx context.Context, in *marketgrpc.BidRequest, opts ...grpc.CallOption) (*marketgrpc.BidResponse, error)
	EndAuction(ctx context.Context, in *marketgrpc.EndAuctionRequest, opts ...grpc.CallOption) (*marketgrpc.EndAuctionResponse, error)
	WithdrawOverbid(ctx context.Context, in *marketgrpc.WithdrawOverbidRequest, opts ...grpc.CallOption) (*marketgrpc.WithdrawOverbidResponse, error)
	GetAuction(ctx context.Context, in *marketgrpc.GetAuctionRequest, opts ...grpc.CallOption) (*marketgrpc.GetAuctionResponse, error)
	GetWithdrawable(ctx context.Context, in *marketgrpc.GetWithdrawableRequest, opts ...grpc.CallOption) (*marketgrpc.GetWithdrawableResponse, error)
	GetBalance(ctx context.Context, in *marketgrpc.GetBalanceRequest, opts ...grpc.CallOption) (*marketgrpc.GetBalanceResponse, error)
	GetCustody(ctx context.Context, in *marketgrpc.GetCustodyRequest, opts ...grpc.CallOption) (*marketgrpc.GetCustodyResponse, error)
	ListEvents(ctx context.Context, in *marketgrpc.ListEventsRequest, opts ...grpc.CallOption) (*marketgrpc.ListEventsResponse, error)
}

// dialMarket connects to the market service. Tests replace it.
var dialMarket = func(ctx context.Context, addr string) (MarketClient, func() error, error) {
	conn, err := platformgrpc.Dial(ctx, platformgrpc.DialConfig{Addr: addr, Service: marketgrpc.ServiceName})
	if err != nil {
		return nil, nil, err
	}
	return marketgrpc.NewClient(conn), conn.Close, nil
}

// ParseConfig parses environment and global flags. It returns the
// subcommand and its arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, nil, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "market gRPC address")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "caller token sent as a bearer credential")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per request timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.GRPCRequest
	}
	return cfg, fs.Args(), nil
}

// Run executes one subcommand.
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if len(args) == 0 {
		return fmt.Errorf("command is required: %s", strings.Join(commandNames(), ", "))
	}
	name, rest := args[0], args[1:]
	switch name {
	case "keygen":
		return runKeygen(out)
	case "token":
		return runToken(rest, out)
	case "cid":
		return runCID(rest, out)
	}
	cmd, ok := rpcCommands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	call := cmd(fs)
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	client, closeConn, err := dialMarket(ctx, cfg.Addr)
	if err != nil {
		return fmt.Errorf("connect to market at %s: %w", cfg.Addr, err)
	}
	defer func() { _ = closeConn() }()

	resp, err := call(outgoingContext(ctx, cfg), client)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

func outgoingContext(ctx context.Context, cfg Config) context.Context {
	var pairs []string
	if token := strings.TrimSpace(cfg.Token); token != "" {
		pairs = append(pairs, marketgrpc.AuthorizationHeader, "Bearer "+token)
	}
	if locale := strings.TrimSpace(cfg.Locale); locale != "" {
		pairs = append(pairs, marketgrpc.LocaleHeader, locale)
	}
	if len(pairs) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

func runKeygen(out io.Writer) error {
	public, private, err := auth.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate caller token key: %w", err)
	}
	if _, err := fmt.Fprintf(out, "export NFTMARKET_CALLER_TOKEN_PRIVATE_KEY=%s\n", private); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "export NFTMARKET_CALLER_TOKEN_PUBLIC_KEY=%s\n", public)
	return err
}

func runToken(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	caller := fs.String("caller", "", "caller address")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("token: %w", err)
	}
	addr, err := core.ParseAddress(*caller)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	cfg, err := auth.LoadIssuerConfigFromEnv(time.Now)
	if err != nil {
		return err
	}
	token, err := auth.Issue(addr, *ttl, cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func runCID(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("cid: exactly one file path is required")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cid: %w", err)
	}
	id, err := core.ContentIDFromBytes(data)
	if err != nil {
		return fmt.Errorf("cid: %w", err)
	}
	_, err = fmt.Fprintln(out, id.String())
	return err
}

type rpcCall func(ctx context.Context, client MarketClient) (any, error)

// rpcCommands bind subcommand flags and return the call to make once they
// are parsed.
var rpcCommands = map[string]func(fs *flag.FlagSet) rpcCall{
	"mint": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.MintTokenRequest{}
		fs.StringVar(&req.Title, "title", "", "asset title")
		fs.StringVar(&req.ContentID, "content", "", "content id")
		fs.StringVar(&req.Recipient, "recipient", "", "initial owner")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.MintToken(ctx, req) }
	},
	"get-token": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.GetTokenRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.GetToken(ctx, req) }
	},
	"count": func(fs *flag.FlagSet) rpcCall {
		return func(ctx context.Context, c MarketClient) (any, error) {
			return c.GetTotalNumberOfNft(ctx, &marketgrpc.GetTotalNumberOfNftRequest{})
		}
	},
	"approve": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.ApproveRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.Approve(ctx, req) }
	},
	"start-auction": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.StartAuctionRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		fs.Int64Var(&req.DurationHint, "duration", 0, "advisory duration in seconds")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.StartAuction(ctx, req) }
	},
	"set-collaborators": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.SetCollaboratorsRequest{}
		addresses := fs.String("addresses", "", "comma separated collaborator addresses")
		percentages := fs.String("percentages", "", "comma separated percentages of the artist share")
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		return func(ctx context.Context, c MarketClient) (any, error) {
			req.Addresses = splitList(*addresses)
			for _, raw := range splitList(*percentages) {
				value, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("set-collaborators: percentage %q: %w", raw, err)
				}
				req.Percentages = append(req.Percentages, value)
			}
			return c.SetCollaborators(ctx, req)
		}
	},
	"bid": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.BidRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		fs.StringVar(&req.PreviousOwner, "previous-owner", "", "seller of the active auction")
		fs.StringVar(&req.Bidder, "bidder", "", "bidder address")
		fs.StringVar(&req.Amount, "amount", "", "bid in the smallest native unit")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.Bid(ctx, req) }
	},
	"end-auction": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.EndAuctionRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.EndAuction(ctx, req) }
	},
	"withdraw": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.WithdrawOverbidRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		fs.StringVar(&req.Account, "account", "", "account to refund")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.WithdrawOverbid(ctx, req) }
	},
	"auction": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.GetAuctionRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.GetAuction(ctx, req) }
	},
	"withdrawable": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.GetWithdrawableRequest{}
		fs.Uint64Var(&req.AssetID, "id", 0, "asset id")
		fs.StringVar(&req.Account, "account", "", "account")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.GetWithdrawable(ctx, req) }
	},
	"balance": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.GetBalanceRequest{}
		fs.StringVar(&req.Address, "address", "", "payee address")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.GetBalance(ctx, req) }
	},
	"custody": func(fs *flag.FlagSet) rpcCall {
		return func(ctx context.Context, c MarketClient) (any, error) {
			return c.GetCustody(ctx, &marketgrpc.GetCustodyRequest{})
		}
	},
	"events": func(fs *flag.FlagSet) rpcCall {
		req := &marketgrpc.ListEventsRequest{}
		fs.StringVar(&req.Filter, "filter", "", "AIP-160 filter")
		fs.IntVar(&req.PageSize, "page-size", 0, "page size")
		fs.StringVar(&req.PageToken, "page-token", "", "page token from a previous call")
		return func(ctx context.Context, c MarketClient) (any, error) { return c.ListEvents(ctx, req) }
	},
}

func commandNames() []string {
	names := []string{"keygen", "token", "cid"}
	for name := range rpcCommands {
		names = append(names, name)
	}
	sort.Strings(names[3:])
	return names
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
