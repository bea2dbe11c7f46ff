// Package ledger tracks native value held in custody by the marketplace and
// the cumulative amount credited to each payee.
package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/command"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/core"
	"github.com/louisbranch/nftmarket/internal/services/market/domain/event"
	"github.com/shopspring/decimal"
)

const (
	CommandTypeReceive command.Type = "funds.receive"
	CommandTypePay     command.Type = "funds.pay"

	EventTypeReceived event.Type = "funds.received"
	EventTypePaid     event.Type = "funds.paid"
)

// PayeePolicy decides whether an address can accept funds.
type PayeePolicy interface {
	AcceptsFunds(addr core.Address) bool
}

// AcceptAll is a PayeePolicy that refuses nobody.
type AcceptAll struct{}

// AcceptsFunds implements PayeePolicy.
func (AcceptAll) AcceptsFunds(core.Address) bool { return true }

// RefusedPayees is a PayeePolicy that refuses a fixed set of addresses.
type RefusedPayees map[core.Address]struct{}

// NewRefusedPayees builds a policy from raw addresses, skipping blanks.
func NewRefusedPayees(raw []string) (RefusedPayees, error) {
	refused := RefusedPayees{}
	for _, value := range raw {
		if strings.TrimSpace(value) == "" {
			continue
		}
		addr, err := core.ParseAddress(value)
		if err != nil {
			return nil, err
		}
		refused[addr] = struct{}{}
	}
	return refused, nil
}

// AcceptsFunds implements PayeePolicy.
func (r RefusedPayees) AcceptsFunds(addr core.Address) bool {
	_, refused := r[addr]
	return !refused
}

// ReceivePayload records a payment attached to an operation.
type ReceivePayload struct {
	From   core.Address    `json:"from"`
	Amount decimal.Decimal `json:"amount"`
}

// Payment is one credit out of custody.
type Payment struct {
	Address core.Address    `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
	Reason  string          `json:"reason"`
}

// PayPayload releases payments from custody.
type PayPayload struct {
	Payments []Payment `json:"payments"`
}

// State is the replayed ledger.
type State struct {
	Custody decimal.Decimal
	paid    map[core.Address]decimal.Decimal
}

// NewState returns an empty ledger.
func NewState() State {
	return State{paid: map[core.Address]decimal.Decimal{}}
}

// Balance returns everything credited to addr so far.
func (s State) Balance(addr core.Address) decimal.Decimal {
	if amount, ok := s.paid[addr]; ok {
		return amount
	}
	return decimal.Zero
}

// Decide returns the decision for a ledger command.
func Decide(state State, cmd command.Command, policy PayeePolicy, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	if policy == nil {
		policy = AcceptAll{}
	}
	switch cmd.Type {
	case CommandTypeReceive:
		var payload ReceivePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		if !payload.Amount.IsPositive() {
			return command.Rejectf(apperrors.CodeInvalidAmount, "received amount must be positive")
		}
		return command.Accept(command.NewEvent(cmd, EventTypeReceived, payload, now()))
	case CommandTypePay:
		var payload PayPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		total := decimal.Zero
		for _, p := range payload.Payments {
			if !p.Amount.IsPositive() {
				return command.Rejectf(apperrors.CodeInvalidAmount, "payment amount must be positive")
			}
			if p.Address.IsZero() || !policy.AcceptsFunds(p.Address) {
				return command.Reject(command.Rejection{
					Code:     apperrors.CodePayoutRejected,
					Message:  "payee can not accept funds",
					Metadata: map[string]string{"Address": p.Address.String()},
				})
			}
			total = total.Add(p.Amount)
		}
		if total.GreaterThan(state.Custody) {
			return command.Rejectf(apperrors.CodeUnknown, "payments exceed custody")
		}
		return command.Accept(command.NewEvent(cmd, EventTypePaid, payload, now()))
	default:
		return command.Rejectf(apperrors.CodeUnknown, "unsupported ledger command "+string(cmd.Type))
	}
}

// Fold applies an event to ledger state. Events owned by other components
// are ignored.
func Fold(state State, evt event.Event) (State, error) {
	if state.paid == nil {
		state.paid = map[core.Address]decimal.Decimal{}
	}
	switch evt.Type {
	case EventTypeReceived:
		var payload ReceivePayload
		if err := evt.Decode(&payload); err != nil {
			return state, fmt.Errorf("ledger fold %s: %w", evt.Type, err)
		}
		state.Custody = state.Custody.Add(payload.Amount)
	case EventTypePaid:
		var payload PayPayload
		if err := evt.Decode(&payload); err != nil {
			return state, fmt.Errorf("ledger fold %s: %w", evt.Type, err)
		}
		for _, p := range payload.Payments {
			state.Custody = state.Custody.Sub(p.Amount)
			state.paid[p.Address] = state.Balance(p.Address).Add(p.Amount)
		}
	}
	return state, nil
}
