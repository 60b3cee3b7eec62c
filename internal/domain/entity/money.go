package entity

import (
	"fmt"
	"math"
	"strings"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the number of decimal places kept for money amounts
const MaxDecimalPlaces = 2

// Cents is a monetary amount stored as an integer number of cents
type Cents int64

var maxCents = decimal.NewFromInt(math.MaxInt64)

// CentsFromDecimal rounds amount half-up to two decimal places and converts it to cents.
// The rounded value must be strictly positive and fit in the ledger.
func CentsFromDecimal(amount decimal.Decimal) (Cents, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}

	scaled := amount.Round(MaxDecimalPlaces).Shift(MaxDecimalPlaces)
	if !scaled.IsPositive() {
		return 0, fmt.Errorf("%w: rounds to zero", errs.ErrInvalidAmount)
	}
	if scaled.GreaterThan(maxCents) {
		return 0, errs.ErrAmountOverflow
	}

	return Cents(scaled.IntPart()), nil
}

// ParseCents parses a decimal string such as "10.5" into cents.
// Negative values are rejected; zero is allowed for opening balances.
func ParseCents(amount string) (Cents, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if value.IsZero() {
		return 0, nil
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("%w: cannot be negative", errs.ErrInvalidAmount)
	}

	return CentsFromDecimal(value)
}

// Decimal returns the amount in currency units
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -MaxDecimalPlaces)
}

// String formats the amount with exactly two decimal places, e.g. 1015 becomes "10.15"
func (c Cents) String() string {
	return c.Decimal().StringFixed(MaxDecimalPlaces)
}

// Add returns c + other, failing instead of wrapping around
func (c Cents) Add(other Cents) (Cents, error) {
	if other > 0 && c > math.MaxInt64-other {
		return 0, errs.ErrAmountOverflow
	}
	if other < 0 && c < math.MinInt64-other {
		return 0, errs.ErrAmountOverflow
	}
	return c + other, nil
}
