package models

import (
	"github.com/shopspring/decimal"

	"github.com/apacheta/apacheta/internal/settlement"
)

// Sheet represents a shared expense split among participants.
type Sheet struct {
	// ID is the unique identifier for the sheet (UUID format).
	ID string

	// Title is the human-readable name for the sheet.
	// Auto-generated from participant names when empty.
	Title string

	// Participants is the list of people splitting the expense, in the order
	// they were entered. The order drives settlement tie-breaks.
	Participants []SheetParticipant

	// CreatedAt is the Unix timestamp when the sheet was created.
	CreatedAt int64
}

// SheetParticipant is one person on a sheet.
type SheetParticipant struct {
	// ID is unique within the sheet (UUID format unless supplied by the caller).
	ID string

	// Name is the display label.
	Name string

	// AmountPaid is what this person put toward the expense.
	AmountPaid decimal.Decimal
}

// SettlementInput converts the sheet's participants for the calculator.
func (s *Sheet) SettlementInput() []settlement.Participant {
	out := make([]settlement.Participant, len(s.Participants))
	for i, p := range s.Participants {
		out[i] = settlement.Participant{ID: p.ID, Name: p.Name, AmountPaid: p.AmountPaid}
	}
	return out
}

// Names returns participant names in sheet order.
func (s *Sheet) Names() []string {
	names := make([]string, len(s.Participants))
	for i, p := range s.Participants {
		names[i] = p.Name
	}
	return names
}
