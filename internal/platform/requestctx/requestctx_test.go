package requestctx

import (
	"context"
	"testing"
)

func TestCallerFromContextRoundTrip(t *testing.T) {
	ctx := WithCaller(context.Background(), "0xabc")
	if got := CallerFromContext(ctx); got != "0xabc" {
		t.Fatalf("CallerFromContext = %q, want %q", got, "0xabc")
	}
}

func TestRequestIDFromContextRoundTrip(t *testing.T) {
	ctx := WithRequestID(WithCaller(context.Background(), "0xabc"), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "req-1")
	}
	if got := CallerFromContext(ctx); got != "0xabc" {
		t.Fatalf("CallerFromContext = %q, want %q", got, "0xabc")
	}
}

func TestFromContextEmpty(t *testing.T) {
	if got := CallerFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty caller, got %q", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty request id for nil context, got %q", got)
	}
}

func TestWithNilContext(t *testing.T) {
	ctx := WithRequestID(nil, "req-9")
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := RequestIDFromContext(ctx); got != "req-9" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "req-9")
	}
}
