package settlement

import (
	"errors"
	"reflect"
	"testing"
)

func TestComputeOutstanding(t *testing.T) {
	input := people("A", "150", "B", "0", "C", "0")

	tests := []struct {
		name     string
		payments []Payment
		want     []transfer
	}{
		{
			name: "no payments matches Compute",
			want: []transfer{
				{from: "B", to: "A", amount: "50.00"},
				{from: "C", to: "A", amount: "50.00"},
			},
		},
		{
			name:     "fully paid debtor drops out",
			payments: []Payment{{FromID: "B", ToID: "A", Amount: amt("50")}},
			want: []transfer{
				{from: "C", to: "A", amount: "50.00"},
			},
		},
		{
			name:     "partial payment leaves remainder",
			payments: []Payment{{FromID: "C", ToID: "A", Amount: amt("20")}},
			want: []transfer{
				{from: "B", to: "A", amount: "50.00"},
				{from: "C", to: "A", amount: "30.00"},
			},
		},
		{
			name: "everything settled",
			payments: []Payment{
				{FromID: "B", ToID: "A", Amount: amt("50")},
				{FromID: "C", ToID: "A", Amount: amt("50")},
			},
			want: []transfer{},
		},
		{
			name:     "overpayment reverses direction",
			payments: []Payment{{FromID: "B", ToID: "A", Amount: amt("60")}},
			want: []transfer{
				{from: "C", to: "A", amount: "40.00"},
				{from: "C", to: "B", amount: "10.00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeOutstanding(input, tt.payments)
			if err != nil {
				t.Fatalf("ComputeOutstanding() error = %v", err)
			}
			if got := transfers(res); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeOutstanding() = %v, want %v", got, tt.want)
			}
			if res.TotalBill.StringFixed(2) != "150.00" || res.AveragePerPerson.StringFixed(2) != "50.00" {
				t.Errorf("aggregates changed: total %s, average %s", res.TotalBill, res.AveragePerPerson)
			}
		})
	}
}

func TestComputeOutstandingRejectsBadPayments(t *testing.T) {
	input := people("A", "10", "B", "0")

	tests := []struct {
		name    string
		payment Payment
		wantErr error
	}{
		{name: "unknown payer", payment: Payment{FromID: "Z", ToID: "A", Amount: amt("1")}, wantErr: ErrUnknownParticipant},
		{name: "unknown receiver", payment: Payment{FromID: "B", ToID: "Z", Amount: amt("1")}, wantErr: ErrUnknownParticipant},
		{name: "self payment", payment: Payment{FromID: "A", ToID: "A", Amount: amt("1")}, wantErr: ErrInvalidPayment},
		{name: "zero amount", payment: Payment{FromID: "B", ToID: "A", Amount: amt("0")}, wantErr: ErrInvalidPayment},
		{name: "out of range amount", payment: Payment{FromID: "B", ToID: "A", Amount: amt("1e9999999")}, wantErr: ErrInvalidPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeOutstanding(input, []Payment{tt.payment})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ComputeOutstanding() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
