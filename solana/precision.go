package solana

import (
	"fmt"

	"github.com/shopspring/decimal"

	"challenges-backend/models"
)

// ToChainUnits scales a human-entered decimal amount into the fixed-point
// integer unit the chain expects for a currency with the given precision.
//
// Rounding rule: nearest integer, ties to even (banker's rounding). Plain
// truncation is not acceptable here because it would silently under-collect
// wagers whose fractional part exceeds the currency's precision.
func ToChainUnits(amount decimal.Decimal, decimals int) (uint64, error) {
	if decimals < 0 {
		return 0, &models.PrecisionError{Message: "decimal precision must be non-negative"}
	}
	if amount.IsNegative() {
		return 0, &models.PrecisionError{Message: "amount must not be negative"}
	}

	scaled := amount.Shift(int32(decimals)).RoundBank(0)
	units := scaled.BigInt()
	if !units.IsUint64() {
		return 0, &models.PrecisionError{
			Message: fmt.Sprintf("amount %s exceeds the representable range at %d decimals", amount, decimals),
		}
	}
	return units.Uint64(), nil
}
