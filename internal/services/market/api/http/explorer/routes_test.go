package explorer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	marketgrpc "github.com/louisbranch/nftmarket/internal/services/market/api/grpc/market"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/auction"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/feed"
	"github.com/louisbranch/nftmarket/internal/services/market/gateway"
	"github.com/louisbranch/nftmarket/internal/services/market/storage/memory"
	"golang.org/x/net/websocket"
)

var (
	adminAddr    = core.MustParseAddress("0x00000000000000000000000000000000000000a0")
	operatorAddr = core.MustParseAddress("0x00000000000000000000000000000000000000a1")
	selfAddr     = core.MustParseAddress("0x00000000000000000000000000000000000000a2")
	artistAddr   = core.MustParseAddress("0x000000000000000000000000000000000000000a")
)

func newTestServer(t *testing.T) (*httptest.Server, *gateway.Gateway, *feed.Hub) {
	t.Helper()
	hub := feed.NewHub(16)
	gw, err := gateway.New(gateway.Config{
		Admin:     adminAddr,
		Operator:  operatorAddr,
		Self:      selfAddr,
		Fees:      auction.DefaultFeeConfig(core.MustParseAddress("0x00000000000000000000000000000000000000f1"), core.MustParseAddress("0x00000000000000000000000000000000000000f2")),
		Journal:   memory.New(),
		Publisher: hub,
	})
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	if err := gw.Bootstrap(context.Background(), adminAddr); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	server := httptest.NewServer(NewHandler(gw, hub))
	t.Cleanup(server.Close)
	return server, gw, hub
}

func getJSON(t *testing.T, url string, header map[string]string, target any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestTokenRoutes(t *testing.T) {
	server, gw, _ := newTestServer(t)
	if _, err := gw.MintToken(context.Background(), operatorAddr, "art", "art", artistAddr); err != nil {
		t.Fatalf("mint: %v", err)
	}

	var count marketgrpc.GetTotalNumberOfNftResponse
	if status := getJSON(t, server.URL+"/v1/tokens/count", nil, &count); status != http.StatusOK || count.Count != 1 {
		t.Fatalf("count = %d (%d)", count.Count, status)
	}

	var token marketgrpc.GetTokenResponse
	if status := getJSON(t, server.URL+"/v1/tokens/1", nil, &token); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if token.Token.Owner != artistAddr.String() || token.Token.Artist != artistAddr.String() || token.Token.Creator != operatorAddr.String() || token.Token.Title != "art" {
		t.Fatalf("token = %+v", token.Token)
	}

	var missing errorBody
	status := getJSON(t, server.URL+"/v1/tokens/0", map[string]string{"Accept-Language": "pt-BR"}, &missing)
	if status != http.StatusNotFound || missing.Error.Code != "NOT_FOUND" || missing.Error.Message == "" {
		t.Fatalf("missing = %+v (%d)", missing, status)
	}

	var auctionResp marketgrpc.GetAuctionResponse
	if status := getJSON(t, server.URL+"/v1/auctions/1", nil, &auctionResp); status != http.StatusOK || auctionResp.Auction.Active {
		t.Fatalf("auction = %+v (%d)", auctionResp.Auction, status)
	}
}

func TestEventsRoute(t *testing.T) {
	server, gw, _ := newTestServer(t)
	if _, err := gw.MintToken(context.Background(), operatorAddr, "art", "art", artistAddr); err != nil {
		t.Fatalf("mint: %v", err)
	}
	var page marketgrpc.ListEventsResponse
	if status := getJSON(t, server.URL+"/v1/events?page_size=2", nil, &page); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(page.Events) != 2 || page.NextPageToken == "" {
		t.Fatalf("page = %+v", page)
	}

	var bad errorBody
	if status := getJSON(t, server.URL+"/v1/events?page_size=x", nil, &bad); status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if status := getJSON(t, server.URL+"/v1/events?filter=type%3D%22a%22", nil, &bad); status != http.StatusBadRequest || bad.Error.Code != "INVALID_FILTER" {
		t.Fatalf("filter on memory journal = %+v (%d)", bad, status)
	}
}

func TestFeedStreamsCommittedEvents(t *testing.T) {
	server, gw, hub := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/feed"
	conn, err := websocket.Dial(wsURL, "", server.URL)
	if err != nil {
		t.Fatalf("dial feed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("feed never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := gw.MintToken(context.Background(), operatorAddr, "art", "art", artistAddr); err != nil {
		t.Fatalf("mint: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Type    string           `json:"type"`
		Payload marketgrpc.Event `json:"payload"`
	}
	if err := json.NewDecoder(conn).Decode(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Type != "market.event" || frame.Payload.Type != "asset.minted" || frame.Payload.AssetID != 1 {
		t.Fatalf("frame = %+v", frame)
	}
}

func TestUp(t *testing.T) {
	server, _, _ := newTestServer(t)
	resp, err := http.Get(server.URL + "/up")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
