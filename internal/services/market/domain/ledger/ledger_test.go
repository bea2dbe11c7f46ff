package ledger

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/command"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/shopspring/decimal"
)

var (
	gateway = core.MustParseAddress("0x00000000000000000000000000000000000000fa")
	payer   = core.MustParseAddress("0x00000000000000000000000000000000000000b1")
	payee   = core.MustParseAddress("0x00000000000000000000000000000000000000c1")
	refused = core.MustParseAddress("0x00000000000000000000000000000000000000dd")
)

func clock() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }

func mustCmd(t *testing.T, cmdType command.Type, payload any) command.Command {
	t.Helper()
	c, err := command.New(cmdType, gateway, 1, "req", payload)
	if err != nil {
		t.Fatalf("new command: %v", err)
	}
	return c
}

func fold(t *testing.T, state State, decision command.Decision) State {
	t.Helper()
	for _, evt := range decision.Events {
		var err error
		state, err = Fold(state, evt)
		if err != nil {
			t.Fatalf("fold %s: %v", evt.Type, err)
		}
	}
	return state
}

func TestReceiveAndPay(t *testing.T) {
	state := NewState()
	decision := Decide(state, mustCmd(t, CommandTypeReceive, ReceivePayload{From: payer, Amount: decimal.NewFromInt(100)}), nil, clock)
	if err := decision.Err(); err != nil {
		t.Fatalf("receive: %v", err)
	}
	state = fold(t, state, decision)
	if !state.Custody.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("custody = %s, want 100", state.Custody)
	}

	decision = Decide(state, mustCmd(t, CommandTypePay, PayPayload{Payments: []Payment{
		{Address: payee, Amount: decimal.NewFromInt(60), Reason: "creator"},
		{Address: payee, Amount: decimal.NewFromInt(15), Reason: "seller"},
	}}), AcceptAll{}, clock)
	if err := decision.Err(); err != nil {
		t.Fatalf("pay: %v", err)
	}
	state = fold(t, state, decision)
	if !state.Custody.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("custody = %s, want 25", state.Custody)
	}
	if !state.Balance(payee).Equal(decimal.NewFromInt(75)) {
		t.Fatalf("balance = %s, want 75", state.Balance(payee))
	}
	if !state.Balance(payer).IsZero() {
		t.Fatalf("payer balance = %s, want 0", state.Balance(payer))
	}
}

func TestReceiveRejectsNonPositive(t *testing.T) {
	decision := Decide(NewState(), mustCmd(t, CommandTypeReceive, ReceivePayload{From: payer}), nil, clock)
	if apperrors.CodeOf(decision.Err()) != apperrors.CodeInvalidAmount {
		t.Fatalf("err = %v, want invalid amount", decision.Err())
	}
}

func TestPayRejectsRefusedPayee(t *testing.T) {
	policy, err := NewRefusedPayees([]string{" ", refused.String()})
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	state := fold(t, NewState(), Decide(NewState(), mustCmd(t, CommandTypeReceive, ReceivePayload{From: payer, Amount: decimal.NewFromInt(10)}), nil, clock))

	decision := Decide(state, mustCmd(t, CommandTypePay, PayPayload{Payments: []Payment{
		{Address: payee, Amount: decimal.NewFromInt(5)},
		{Address: refused, Amount: decimal.NewFromInt(5)},
	}}), policy, clock)
	if apperrors.CodeOf(decision.Err()) != apperrors.CodePayoutRejected {
		t.Fatalf("err = %v, want payout rejected", decision.Err())
	}
	if len(decision.Events) != 0 {
		t.Fatal("rejected payout emitted events")
	}
}

func TestPayRejectsOverdraw(t *testing.T) {
	decision := Decide(NewState(), mustCmd(t, CommandTypePay, PayPayload{Payments: []Payment{
		{Address: payee, Amount: decimal.NewFromInt(1)},
	}}), nil, clock)
	if apperrors.CodeOf(decision.Err()) != apperrors.CodeUnknown {
		t.Fatalf("err = %v, want unknown", decision.Err())
	}
}

func TestNewRefusedPayeesRejectsMalformed(t *testing.T) {
	if _, err := NewRefusedPayees([]string{"nope"}); apperrors.CodeOf(err) != apperrors.CodeInvalidAddress {
		t.Fatalf("err = %v, want invalid address", err)
	}
}

func TestFoldRejectsUndecodablePayload(t *testing.T) {
	decision := Decide(NewState(), mustCmd(t, CommandTypeReceive, ReceivePayload{From: payer, Amount: decimal.NewFromInt(10)}), nil, clock)
	for _, evtType := range []event.Type{EventTypeReceived, EventTypePaid} {
		evt := decision.Events[0]
		evt.Type = evtType
		evt.PayloadJSON = []byte(`{"amount":`)
		if _, err := Fold(NewState(), evt); err == nil {
			t.Fatalf("fold %s with corrupt payload: expected error", evtType)
		}
	}
}
