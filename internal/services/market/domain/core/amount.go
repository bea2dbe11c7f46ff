package core

import (
	"strings"

	apperrors "github.com/louisbranch/nftmarket/internal/platform/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a native-value amount: a non-negative whole number in
// the smallest unit. Blank input is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.CodeInvalidAmount, "amount is not a number", err)
	}
	if amount.IsNegative() {
		return decimal.Zero, apperrors.New(apperrors.CodeInvalidAmount, "amount must not be negative")
	}
	if !amount.Equal(amount.Truncate(0)) {
		return decimal.Zero, apperrors.New(apperrors.CodeInvalidAmount, "amount must be a whole number")
	}
	return amount.Truncate(0), nil
}

// PercentOf returns floor(amount * pct / 100) for non-negative amounts.
func PercentOf(amount decimal.Decimal, pct Percent) decimal.Decimal {
	if pct == 0 || amount.IsZero() {
		return decimal.Zero
	}
	q, _ := amount.Mul(decimal.NewFromInt(int64(pct))).QuoRem(hundred, 0)
	return q
}

// SumAmounts adds amounts.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
