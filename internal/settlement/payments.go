package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment is money that already changed hands between two participants.
type Payment struct {
	FromID string
	ToID   string
	Amount decimal.Decimal
}

// ComputeOutstanding returns the transfers still needed after payments.
// A payment improves the payer's balance and reduces the receiver's; TotalBill
// and AveragePerPerson are the same as for Compute.
func ComputeOutstanding(participants []Participant, payments []Payment) (*Result, error) {
	balances, total, err := buildBalances(participants)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(balances))
	for i, b := range balances {
		index[b.party.ID] = i
	}

	n := decimal.NewFromInt(int64(len(balances)))
	for _, p := range payments {
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount %s must be positive", ErrInvalidPayment, p.Amount)
		}
		if !inRange(p.Amount) {
			return nil, fmt.Errorf("%w: amount out of range", ErrInvalidPayment)
		}
		if p.FromID == p.ToID {
			return nil, fmt.Errorf("%w: %q cannot pay themselves", ErrInvalidPayment, p.FromID)
		}
		from, ok := index[p.FromID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, p.FromID)
		}
		to, ok := index[p.ToID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, p.ToID)
		}

		scaled := p.Amount.Mul(n)
		balances[from].scaled = balances[from].scaled.Add(scaled)
		balances[to].scaled = balances[to].scaled.Sub(scaled)
	}

	return newResult(balances, total), nil
}
