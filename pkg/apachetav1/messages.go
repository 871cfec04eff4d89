// Package apachetav1 defines the v1 settlement API: message types, procedure
// names, and connect handler and client constructors.
//
// Messages are plain structs encoded as JSON. Amounts travel as decimal
// strings ("12.50") so no precision is lost between client and server.
package apachetav1

// Participant is one person in a split. ID is optional on input.
type Participant struct {
	ID         string `json:"id,omitempty" validate:"omitempty,max=64"`
	Name       string `json:"name" validate:"required,max=100"`
	AmountPaid string `json:"amount_paid" validate:"required,max=32"`
}

// Settlement is a suggested transfer from a debtor to a creditor.
type Settlement struct {
	FromID   string `json:"from_id"`
	FromName string `json:"from_name"`
	ToID     string `json:"to_id"`
	ToName   string `json:"to_name"`
	Amount   string `json:"amount"`
}

// Summary is the settlement result with its display aggregates.
type Summary struct {
	Settlements      []*Settlement `json:"settlements"`
	TotalBill        string        `json:"total_bill"`
	AveragePerPerson string        `json:"average_per_person"`
	SettlementCount  int32         `json:"settlement_count"`
}

// Payment is a transfer already made between two sheet participants.
type Payment struct {
	ID        string `json:"id"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	Amount    string `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Sheet is a saved split with its payments and outstanding settlements.
type Sheet struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Participants []*Participant `json:"participants"`
	Payments     []*Payment     `json:"payments"`
	Outstanding  *Summary       `json:"outstanding"`
	CreatedAt    int64          `json:"created_at"`
}

// SheetSummary is the list view of a sheet.
type SheetSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	TotalBill        string `json:"total_bill"`
	ParticipantCount int32  `json:"participant_count"`
	CreatedAt        int64  `json:"created_at"`
}

// CalculateRequest carries participants for a one-off calculation.
type CalculateRequest struct {
	Participants []*Participant `json:"participants" validate:"max=500,dive,required"`
}

// CalculateResponse returns the computed settlements.
type CalculateResponse struct {
	Summary *Summary `json:"summary"`
}

// CreateSheetRequest saves a new sheet. An empty title is generated.
type CreateSheetRequest struct {
	Title        string         `json:"title,omitempty" validate:"max=200"`
	Participants []*Participant `json:"participants" validate:"required,min=1,max=500,dive,required"`
}

// CreateSheetResponse returns the stored sheet.
type CreateSheetResponse struct {
	Sheet *Sheet `json:"sheet"`
}

// GetSheetRequest identifies a sheet to load.
type GetSheetRequest struct {
	SheetID string `json:"sheet_id" validate:"required"`
}

// GetSheetResponse returns a sheet with its outstanding settlements.
type GetSheetResponse struct {
	Sheet *Sheet `json:"sheet"`
}

// ListSheetsRequest takes no parameters.
type ListSheetsRequest struct{}

// ListSheetsResponse lists sheets, newest first.
type ListSheetsResponse struct {
	Sheets []*SheetSummary `json:"sheets"`
}

// DeleteSheetRequest identifies a sheet to delete along with its payments.
type DeleteSheetRequest struct {
	SheetID string `json:"sheet_id" validate:"required"`
}

// DeleteSheetResponse is empty.
type DeleteSheetResponse struct{}

// RecordPaymentRequest records money already paid between two participants.
type RecordPaymentRequest struct {
	SheetID string `json:"sheet_id" validate:"required"`
	FromID  string `json:"from_id" validate:"required"`
	ToID    string `json:"to_id" validate:"required,nefield=FromID"`
	Amount  string `json:"amount" validate:"required,max=32"`
	Note    string `json:"note,omitempty" validate:"max=500"`
}

// RecordPaymentResponse returns the payment and the updated sheet.
type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
	Sheet   *Sheet   `json:"sheet"`
}

// DeletePaymentRequest identifies a payment to delete.
type DeletePaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
}

// DeletePaymentResponse is empty.
type DeletePaymentResponse struct{}
