package core

import (
	"testing"

	"github.com/ipfs/go-cid"
	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/shopspring/decimal"
)

func TestParseAddress(t *testing.T) {
	got, err := ParseAddress("  0xAbCdEf0123456789abcdef0123456789ABCDEF01 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "0xabcdef0123456789abcdef0123456789abcdef01" {
		t.Fatalf("address = %q", got)
	}

	blank, err := ParseAddress("   ")
	if err != nil || blank != "" {
		t.Fatalf("blank = %q, %v", blank, err)
	}
	if !blank.IsZero() {
		t.Fatal("expected blank address to be zero")
	}

	for _, bad := range []string{"abc", "0x123", "0xzz00000000000000000000000000000000000000"} {
		_, err := ParseAddress(bad)
		if apperrors.CodeOf(err) != apperrors.CodeInvalidAddress {
			t.Fatalf("ParseAddress(%q) err = %v, want invalid address", bad, err)
		}
	}
}

func TestZeroAddress(t *testing.T) {
	if !ZeroAddress.IsZero() {
		t.Fatal("expected zero address to be zero")
	}
	if MustParseAddress("0x00000000000000000000000000000000000000aa").IsZero() {
		t.Fatal("expected non-zero address")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		code apperrors.Code
	}{
		{raw: "", want: "0"},
		{raw: "5000000000000000000", want: "5000000000000000000"},
		{raw: " 42 ", want: "42"},
		{raw: "1.0", want: "1"},
		{raw: "1.5", code: apperrors.CodeInvalidAmount},
		{raw: "-1", code: apperrors.CodeInvalidAmount},
		{raw: "ten", code: apperrors.CodeInvalidAmount},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.raw)
		if tc.code != "" {
			if apperrors.CodeOf(err) != tc.code {
				t.Fatalf("ParseAmount(%q) err = %v, want %s", tc.raw, err, tc.code)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.raw, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestPercentOfTruncates(t *testing.T) {
	tests := []struct {
		amount int64
		pct    Percent
		want   int64
	}{
		{100, 10, 10},
		{5, 87, 4},
		{5, 3, 0},
		{999, 33, 329},
		{7, 100, 7},
		{7, 0, 0},
	}
	for _, tc := range tests {
		got := PercentOf(decimal.NewFromInt(tc.amount), tc.pct)
		if !got.Equal(decimal.NewFromInt(tc.want)) {
			t.Fatalf("PercentOf(%d, %d) = %s, want %d", tc.amount, tc.pct, got, tc.want)
		}
	}
}

func TestPercentValid(t *testing.T) {
	if !Percent(0).Valid() || !Percent(100).Valid() {
		t.Fatal("expected bounds to be valid")
	}
	if Percent(-1).Valid() || Percent(101).Valid() {
		t.Fatal("expected out-of-range to be invalid")
	}
	if got := SumPercents(25, 30, 45); got != 100 {
		t.Fatalf("SumPercents = %d, want 100", got)
	}
}

func TestParseAssetID(t *testing.T) {
	id, err := ParseAssetID("7")
	if err != nil || id != 7 {
		t.Fatalf("ParseAssetID(7) = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "", "-1", "x"} {
		if _, err := ParseAssetID(bad); apperrors.CodeOf(err) != apperrors.CodeNotFound {
			t.Fatalf("ParseAssetID(%q) err = %v, want not found", bad, err)
		}
	}
}

func TestContentKeyCanonicalizesCIDs(t *testing.T) {
	c, err := ContentIDFromBytes([]byte("art"))
	if err != nil {
		t.Fatalf("content id: %v", err)
	}
	v0 := cid.NewCidV0(c.Hash())
	v1DagPB := cid.NewCidV1(cid.DagProtobuf, c.Hash())

	if ContentKey(v0.String()) != ContentKey(v1DagPB.String()) {
		t.Fatalf("v0 key %q != v1 key %q", ContentKey(v0.String()), ContentKey(v1DagPB.String()))
	}
	if ContentKey("ipfs://"+c.String()) != c.String() {
		t.Fatalf("ipfs scheme key = %q, want %q", ContentKey("ipfs://"+c.String()), c.String())
	}
	if ContentKey("  art  ") != "art" {
		t.Fatalf("plain key = %q, want %q", ContentKey("  art  "), "art")
	}
	if ContentKey(" ") != "" {
		t.Fatal("expected blank content key")
	}
}

func TestContentIDFromBytesIsStable(t *testing.T) {
	a, err := ContentIDFromBytes([]byte("payload"))
	if err != nil {
		t.Fatalf("content id: %v", err)
	}
	b, _ := ContentIDFromBytes([]byte("payload"))
	if !a.Equals(b) {
		t.Fatal("expected identical content ids")
	}
	if a.Prefix().Codec != cid.Raw {
		t.Fatalf("codec = %d, want raw", a.Prefix().Codec)
	}
}
