package settlement

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Supported amount range: up to 15 integer digits and 8 decimal places.
const (
	maxIntegerDigits = 15
	maxDecimalPlaces = 8
)

// AmountError describes an amount that cannot take part in a calculation.
type AmountError struct {
	ParticipantID string
	Value         string
	Reason        string
}

func (e *AmountError) Error() string {
	if e.ParticipantID == "" {
		return fmt.Sprintf("invalid amount %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid amount %q for participant %q: %s", e.Value, e.ParticipantID, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidAmount) hold for every AmountError.
func (e *AmountError) Unwrap() error {
	return ErrInvalidAmount
}

// ParseAmount converts user input into a non-negative decimal.
// A single comma is accepted as the decimal separator ("12,50").
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, &AmountError{Value: raw, Reason: "empty"}
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &AmountError{Value: raw, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &AmountError{Value: raw, Reason: "must not be negative"}
	}
	if !inRange(d) {
		return decimal.Zero, &AmountError{Value: raw, Reason: "out of range"}
	}
	return d, nil
}

// inRange reports whether d fits the supported amount range. It only looks at
// the coefficient and exponent, so "1e9999999" and "0e9999999" are rejected
// without expanding them.
func inRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxDecimalPlaces {
		return false
	}
	digits := int64(len(new(big.Int).Abs(d.Coefficient()).String()))
	return digits+exp <= maxIntegerDigits
}
