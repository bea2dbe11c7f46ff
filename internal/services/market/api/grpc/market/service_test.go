package market

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"net"
	"testing"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/auth"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/auction"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/gateway"
	"github.com/louisbranch/nftmarket/internal/services/market/storage/memory"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var (
	adminAddr    = core.MustParseAddress("0x00000000000000000000000000000000000000a0")
	operatorAddr = core.MustParseAddress("0x00000000000000000000000000000000000000a1")
	selfAddr     = core.MustParseAddress("0x00000000000000000000000000000000000000a2")
	platformAddr = core.MustParseAddress("0x00000000000000000000000000000000000000f1")
	networkAddr  = core.MustParseAddress("0x00000000000000000000000000000000000000f2")
	artistAddr   = core.MustParseAddress("0x000000000000000000000000000000000000000a")
	bidderAddr   = core.MustParseAddress("0x000000000000000000000000000000000000000b")
)

type harness struct {
	client *Client
	issuer auth.IssuerConfig
}

func newHarness(t *testing.T) harness {
	t.Helper()
	pubRaw, privRaw, err := auth.GenerateKeyPair()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	pub, _ := base64.StdEncoding.DecodeString(pubRaw)
	priv, _ := base64.StdEncoding.DecodeString(privRaw)
	verifier := auth.VerifierConfig{Issuer: "nftmarket", Audience: "market", Key: ed25519.PublicKey(pub)}
	issuer := auth.IssuerConfig{Issuer: "nftmarket", Audience: "market", Key: ed25519.PrivateKey(priv)}

	gw, err := gateway.New(gateway.Config{
		Admin:    adminAddr,
		Operator: operatorAddr,
		Self:     selfAddr,
		Fees:     auction.DefaultFeeConfig(platformAddr, networkAddr),
		Journal:  memory.New(),
	})
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	if err := gw.Bootstrap(context.Background(), adminAddr); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(UnaryServerInterceptor(verifier, nil)))
	RegisterMarketServiceServer(server, NewService(gw))
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return harness{client: NewClient(conn), issuer: issuer}
}

func (h harness) as(t *testing.T, caller core.Address, locale string) context.Context {
	t.Helper()
	token, err := auth.Issue(caller, time.Hour, h.issuer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	pairs := []string{AuthorizationHeader, "Bearer " + token}
	if locale != "" {
		pairs = append(pairs, LocaleHeader, locale)
	}
	return metadata.NewOutgoingContext(context.Background(), metadata.Pairs(pairs...))
}

func errorReason(t *testing.T, err error) (codes.Code, string, *errdetails.LocalizedMessage) {
	t.Helper()
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("not a status error: %v", err)
	}
	var reason string
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			reason = d.Reason
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	return st.Code(), reason, localized
}

func TestAuctionRoundTrip(t *testing.T) {
	h := newHarness(t)
	operator := h.as(t, operatorAddr, "")
	artist := h.as(t, artistAddr, "")

	minted, err := h.client.MintToken(operator, &MintTokenRequest{Title: "art", ContentID: "art", Recipient: artistAddr.String()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if minted.AssetID != 1 {
		t.Fatalf("asset id = %d, want 1", minted.AssetID)
	}
	if _, err := h.client.Approve(artist, &ApproveRequest{AssetID: 1}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	started, err := h.client.StartAuction(operator, &StartAuctionRequest{AssetID: 1, DurationHint: 60})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.AuctionStart.Seller != artistAddr.String() {
		t.Fatalf("seller = %s", started.AuctionStart.Seller)
	}
	if _, err := h.client.Bid(operator, &BidRequest{AssetID: 1, PreviousOwner: artistAddr.String(), Bidder: bidderAddr.String(), Amount: "5000"}); err != nil {
		t.Fatalf("bid: %v", err)
	}
	ended, err := h.client.EndAuction(operator, &EndAuctionRequest{AssetID: 1})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.Settlement.Buyer != bidderAddr.String() || ended.Settlement.SaleType != "primary" {
		t.Fatalf("settlement = %+v", ended.Settlement)
	}

	token, err := h.client.GetToken(context.Background(), &GetTokenRequest{AssetID: 1})
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	if token.Token.Owner != bidderAddr.String() || token.Token.Creator != operatorAddr.String() || token.Token.Artist != artistAddr.String() {
		t.Fatalf("token = %+v", token.Token)
	}
	balance, err := h.client.GetBalance(context.Background(), &GetBalanceRequest{Address: artistAddr.String()})
	if err != nil || balance.Amount != "4350" {
		t.Fatalf("artist balance = %+v, %v", balance, err)
	}
	events, err := h.client.ListEvents(context.Background(), &ListEventsRequest{Filter: "", PageSize: 50})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events.Events) == 0 || events.Events[len(events.Events)-1].Type != "funds.paid" {
		t.Fatalf("events = %+v", events.Events)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.MintToken(context.Background(), &MintTokenRequest{Title: "a", ContentID: "a", Recipient: artistAddr.String()})
	code, reason, _ := errorReason(t, err)
	if code != codes.Unauthenticated || reason != string(apperrors.CodeUnauthenticated) {
		t.Fatalf("code = %s reason = %s", code, reason)
	}

	if _, err := h.client.GetTotalNumberOfNft(context.Background(), &GetTotalNumberOfNftRequest{}); err != nil {
		t.Fatalf("public read: %v", err)
	}

	bad := metadata.NewOutgoingContext(context.Background(), metadata.Pairs(AuthorizationHeader, "Bearer nope"))
	_, err = h.client.GetCustody(bad, &GetCustodyRequest{})
	if code, _, _ := errorReason(t, err); code != codes.Unauthenticated {
		t.Fatalf("code = %s, want Unauthenticated", code)
	}
}

func TestDomainErrorsAreLocalized(t *testing.T) {
	h := newHarness(t)
	operator := h.as(t, operatorAddr, "pt-BR")
	if _, err := h.client.MintToken(operator, &MintTokenRequest{Title: "art", ContentID: "art", Recipient: artistAddr.String()}); err != nil {
		t.Fatalf("mint: %v", err)
	}
	_, _ = h.client.StartAuction(operator, &StartAuctionRequest{AssetID: 1})
	_, _ = h.client.Bid(operator, &BidRequest{AssetID: 1, PreviousOwner: artistAddr.String(), Bidder: bidderAddr.String(), Amount: "10"})

	_, err := h.client.Bid(operator, &BidRequest{AssetID: 1, PreviousOwner: artistAddr.String(), Bidder: adminAddr.String(), Amount: "10"})
	code, reason, localized := errorReason(t, err)
	if code != codes.FailedPrecondition || reason != string(apperrors.CodeBidTooLow) {
		t.Fatalf("code = %s reason = %s", code, reason)
	}
	if st, _ := status.FromError(err); st.Message() != auction.BidTooLowMessage {
		t.Fatalf("message = %q, want %q", st.Message(), auction.BidTooLowMessage)
	}
	if localized == nil || localized.Locale != "pt-BR" || localized.Message == "" {
		t.Fatalf("localized = %+v", localized)
	}

	_, err = h.client.GetToken(context.Background(), &GetTokenRequest{AssetID: 7})
	if code, reason, _ := errorReason(t, err); code != codes.NotFound || reason != string(apperrors.CodeNotFound) {
		t.Fatalf("code = %s reason = %s", code, reason)
	}

	_, err = h.client.Bid(operator, &BidRequest{AssetID: 1, PreviousOwner: artistAddr.String(), Bidder: "nope", Amount: "10"})
	if _, reason, _ := errorReason(t, err); reason != string(apperrors.CodeInvalidAddress) {
		t.Fatalf("reason = %s, want invalid address", reason)
	}
	_, err = h.client.Bid(operator, &BidRequest{AssetID: 1, PreviousOwner: artistAddr.String(), Bidder: bidderAddr.String(), Amount: "1.5"})
	if _, reason, _ := errorReason(t, err); reason != string(apperrors.CodeInvalidAmount) {
		t.Fatalf("reason = %s, want invalid amount", reason)
	}
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
		"abc":         "",
		"":            "",
		"Bearer ":     "",
	}
	for in, want := range tests {
		if got := bearerToken(in); got != want {
			t.Fatalf("bearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}
