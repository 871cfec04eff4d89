// Package settlement computes the peer-to-peer transfers that even out a
// shared expense.
package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned (wrapped in *AmountError) for negative,
	// non-numeric or out of range amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidParticipant is returned for participants without an ID or name.
	ErrInvalidParticipant = errors.New("invalid participant")
	// ErrDuplicateParticipant is returned when two participants share an ID.
	ErrDuplicateParticipant = errors.New("duplicate participant")
	// ErrUnknownParticipant is returned when a payment references someone
	// outside the participant list.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrInvalidPayment is returned for self-payments and non-positive payments.
	ErrInvalidPayment = errors.New("invalid payment")
)

// currencyPlaces is the number of decimal places settlements are rounded to.
const currencyPlaces = 2

// Participant is one person sharing the expense.
type Participant struct {
	ID         string
	Name       string
	AmountPaid decimal.Decimal
}

// Party identifies one side of a transfer.
type Party struct {
	ID   string
	Name string
}

// Settlement is a single transfer from a debtor to a creditor.
type Settlement struct {
	From   Party // Debtor
	To     Party // Creditor
	Amount decimal.Decimal
}

// Result holds the settlements of one calculation plus the aggregates that are
// usually displayed next to them.
type Result struct {
	Settlements []Settlement
	TotalBill   decimal.Decimal
	// AveragePerPerson is the unrounded fair share.
	AveragePerPerson decimal.Decimal
}

// Count returns the number of transfers.
func (r *Result) Count() int {
	return len(r.Settlements)
}

// balance is a participant's net position multiplied by the participant count.
// Scaling keeps the fair share out of the arithmetic: net*n = paid*n - total,
// so all balances are exact and sum to zero.
type balance struct {
	party  Party
	scaled decimal.Decimal
}

// Compute returns the transfers that bring every participant to the fair share
// (total paid divided by participant count).
//
// Algorithm:
//   - Validate every participant; a single bad amount rejects the whole set
//   - Split balances into debtors and creditors, keeping input order
//   - Greedily pair the current debtor with the current creditor, transferring
//     the smaller of the two remaining amounts
//   - Round to cents at emission, using the running total of transfers
//
// The input slice is not modified.
func Compute(participants []Participant) (*Result, error) {
	balances, total, err := buildBalances(participants)
	if err != nil {
		return nil, err
	}
	return newResult(balances, total), nil
}

func buildBalances(participants []Participant) ([]balance, decimal.Decimal, error) {
	if err := validate(participants); err != nil {
		return nil, decimal.Zero, err
	}

	total := TotalPaid(participants)
	n := decimal.NewFromInt(int64(len(participants)))
	balances := make([]balance, len(participants))
	for i, p := range participants {
		balances[i] = balance{
			party:  Party{ID: p.ID, Name: p.Name},
			scaled: p.AmountPaid.Mul(n).Sub(total),
		}
	}
	return balances, total, nil
}

// TotalPaid returns the sum of every participant's contribution.
func TotalPaid(participants []Participant) decimal.Decimal {
	total := decimal.Zero
	for _, p := range participants {
		total = total.Add(p.AmountPaid)
	}
	return total
}

func validate(participants []Participant) error {
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p.ID == "" {
			return fmt.Errorf("%w: missing id", ErrInvalidParticipant)
		}
		if p.Name == "" {
			return fmt.Errorf("%w: participant %q has no name", ErrInvalidParticipant, p.ID)
		}
		if p.AmountPaid.IsNegative() {
			return &AmountError{ParticipantID: p.ID, Value: p.AmountPaid.String(), Reason: "must not be negative"}
		}
		if !inRange(p.AmountPaid) {
			return &AmountError{ParticipantID: p.ID, Reason: "out of range"}
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func newResult(balances []balance, total decimal.Decimal) *Result {
	res := &Result{
		Settlements:      []Settlement{},
		TotalBill:        total,
		AveragePerPerson: decimal.Zero,
	}
	if len(balances) == 0 {
		return res
	}

	n := decimal.NewFromInt(int64(len(balances)))
	res.AveragePerPerson = total.Div(n)
	res.Settlements = match(balances, n)
	return res
}

// match pairs debtors with creditors in input order.
func match(balances []balance, n decimal.Decimal) []Settlement {
	var debtors, creditors []balance
	for _, b := range balances {
		switch b.scaled.Sign() {
		case -1:
			debtors = append(debtors, balance{party: b.party, scaled: b.scaled.Neg()})
		case 1:
			creditors = append(creditors, b)
		}
	}

	settlements := []Settlement{}
	transferred := decimal.Zero
	emitted := decimal.Zero

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.scaled, creditor.scaled)
		debtor.scaled = debtor.scaled.Sub(amount)
		creditor.scaled = creditor.scaled.Sub(amount)

		// Round the running total rather than each transfer: every party's
		// rounded total then stays within a cent of its exact balance.
		transferred = transferred.Add(amount)
		boundary := transferred.Div(n).Round(currencyPlaces)
		if value := boundary.Sub(emitted); value.IsPositive() {
			settlements = append(settlements, Settlement{
				From:   debtor.party,
				To:     creditor.party,
				Amount: value,
			})
			emitted = boundary
		}

		if debtor.scaled.IsZero() {
			i++
		}
		if creditor.scaled.IsZero() {
			j++
		}
	}

	return settlements
}
