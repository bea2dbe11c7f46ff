package market

import (
	"context"
	"errors"
	"log"
	"strings"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/platform/errors/i18n"
	"github.com/louisbranch/nftmarket/internal/platform/id"
	"github.com/louisbranch/nftmarket/internal/platform/requestctx"
	"github.com/louisbranch/nftmarket/internal/services/market/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// AuthorizationHeader carries "Bearer <caller token>".
	AuthorizationHeader = "authorization"
	// RequestIDHeader is the metadata key for request correlation IDs.
	RequestIDHeader = "x-nftmarket-request-id"
	// LocaleHeader selects the language of localized error messages.
	LocaleHeader = "x-nftmarket-locale"
)

// publicMethods can be called without a caller token.
var publicMethods = map[string]bool{
	GetToken_FullMethodName:            true,
	GetTotalNumberOfNft_FullMethodName: true,
	GetAuction_FullMethodName:          true,
	GetWithdrawable_FullMethodName:     true,
	GetBalance_FullMethodName:          true,
	GetCustody_FullMethodName:          true,
	ListEvents_FullMethodName:          true,
}

// UnaryServerInterceptor attaches a request id and the authenticated caller
// to the context and turns domain errors into localized gRPC statuses.
func UnaryServerInterceptor(verifier auth.VerifierConfig, idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		requestID := firstValue(md, RequestIDHeader)
		if requestID == "" {
			generated, err := idGenerator()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "generate request id: %v", err)
			}
			requestID = generated
		}
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		ctx = requestctx.WithRequestID(ctx, requestID)
		locale := firstValue(md, LocaleHeader)

		token := bearerToken(firstValue(md, AuthorizationHeader))
		switch {
		case token != "":
			claims, err := auth.Verify(token, verifier)
			if err != nil {
				return nil, toStatus(err, locale)
			}
			ctx = requestctx.WithCaller(ctx, claims.Caller.String())
		case !publicMethods[info.FullMethod]:
			return nil, toStatus(apperrors.New(apperrors.CodeUnauthenticated, "caller token is required"), locale)
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return nil, toStatus(err, locale)
		}
		return resp, nil
	}
}

// toStatus converts err into a gRPC status carrying error details and a
// message localized for locale.
func toStatus(err error, locale string) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		log.Printf("market rpc: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
	if domainErr.Code == apperrors.CodeUnknown {
		log.Printf("market rpc: %v", err)
	}
	catalog := i18n.GetCatalog(locale)
	return domainErr.ToGRPCStatus(catalog.Locale(), catalog.Message(domainErr))
}

func bearerToken(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 7 && strings.EqualFold(value[:7], "bearer ") {
		return strings.TrimSpace(value[7:])
	}
	return ""
}

func firstValue(md metadata.MD, key string) string {
	for _, value := range md.Get(key) {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
