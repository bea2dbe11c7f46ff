// Package explorer serves the read-only HTTP API and the live event feed.
package explorer

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/errors/i18n"
	"github.com/louisbranch/nftmarket/internal/platform/timeouts"
	marketgrpc "github.com/louisbranch/nftmarket/internal/services/market/api/grpc/market"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/feed"
	"github.com/louisbranch/nftmarket/internal/services/market/gateway"
	"golang.org/x/net/websocket"
)

type wsFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewHandler returns the explorer routes over gw. Events published on hub
// are streamed on /v1/feed.
func NewHandler(gw *gateway.Gateway, hub *feed.Hub) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/up", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	v1 := r.Group("/v1")
	v1.GET("/tokens/count", countTokens(gw))
	v1.GET("/tokens/:id", getToken(gw))
	v1.GET("/auctions/:id", getAuction(gw))
	v1.GET("/events", listEvents(gw))
	v1.GET("/feed", gin.WrapH(websocket.Handler(func(conn *websocket.Conn) {
		streamFeed(conn, hub)
	})))
	return r
}

func countTokens(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, marketgrpc.GetTotalNumberOfNftResponse{Count: gw.GetTotalNumberOfNft(c.Request.Context())})
	}
}

func getToken(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseAssetID(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		token, err := gw.GetToken(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, marketgrpc.GetTokenResponse{Token: marketgrpc.TokenToWire(token)})
	}
}

func getAuction(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseAssetID(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		view, err := gw.GetAuction(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, marketgrpc.GetAuctionResponse{Auction: marketgrpc.AuctionToWire(view)})
	}
}

func listEvents(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageSize := 0
		if raw := strings.TrimSpace(c.Query("page_size")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(c, apperrors.WithMetadata(apperrors.CodeInvalidFilter, "page_size must be an integer",
					map[string]string{"Field": "page_size"}))
				return
			}
			pageSize = parsed
		}
		page, err := gw.ListEvents(c.Request.Context(), c.Query("filter"), pageSize, c.Query("page_token"))
		if err != nil {
			writeError(c, err)
			return
		}
		resp := marketgrpc.ListEventsResponse{
			Events:        make([]marketgrpc.Event, 0, len(page.Events)),
			NextPageToken: page.NextPageToken,
		}
		for _, evt := range page.Events {
			resp.Events = append(resp.Events, marketgrpc.EventToWire(evt))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func writeError(c *gin.Context, err error) {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	if domainErr.Code == apperrors.CodeUnknown {
		log.Printf("explorer %s: %v", c.FullPath(), err)
	}
	catalog := i18n.GetCatalog(i18n.MatchLocale(c.GetHeader("Accept-Language")))
	c.JSON(domainErr.Code.HTTPStatus(), gin.H{"error": gin.H{
		"code":    string(domainErr.Code),
		"message": catalog.Message(domainErr),
	}})
}

// streamFeed writes every published event to conn until the client goes
// away or falls behind.
func streamFeed(conn *websocket.Conn, hub *feed.Hub) {
	defer func() {
		_ = conn.Close()
	}()
	if hub == nil {
		return
	}
	sub := hub.Subscribe()
	defer sub.Cancel()

	closed := make(chan struct{})
	go func() {
		_, _ = io.Copy(io.Discard, conn)
		close(closed)
	}()

	encoder := json.NewEncoder(conn)
	for {
		select {
		case <-closed:
			return
		case evt, ok := <-sub.C:
			if !ok {
				_ = encoder.Encode(wsFrame{Type: "market.lagged"})
				return
			}
			payload, err := json.Marshal(marketgrpc.EventToWire(evt))
			if err != nil {
				log.Printf("explorer: marshal feed event %d: %v", evt.Seq, err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(timeouts.FeedWrite))
			if err := encoder.Encode(wsFrame{Type: "market.event", Payload: payload}); err != nil {
				return
			}
		}
	}
}
