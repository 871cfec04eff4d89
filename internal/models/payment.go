package models

import (
	"github.com/shopspring/decimal"

	"github.com/apacheta/apacheta/internal/settlement"
)

// Payment represents money that already moved between two sheet participants.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// SheetID is the sheet this payment belongs to.
	SheetID string

	// FromID is the participant who paid (debtor settling up).
	FromID string

	// ToID is the participant who received the money (creditor).
	ToID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Note is an optional description for the payment.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}

// PaymentInputs converts stored payments for the calculator.
func PaymentInputs(payments []*Payment) []settlement.Payment {
	out := make([]settlement.Payment, len(payments))
	for i, p := range payments {
		out[i] = settlement.Payment{FromID: p.FromID, ToID: p.ToID, Amount: p.Amount}
	}
	return out
}
