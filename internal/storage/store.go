// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/apacheta/apacheta/internal/models"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// Store defines the interface for sheet and payment storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateSheet persists a new sheet. The sheet.ID, CreatedAt, Title and
	// participant IDs are populated by the store when empty.
	CreateSheet(ctx context.Context, sheet *models.Sheet) error

	// GetSheet retrieves a sheet with its participants in entry order.
	GetSheet(ctx context.Context, sheetID string) (*models.Sheet, error)

	// ListSheets returns all sheets, newest first.
	ListSheets(ctx context.Context) ([]*models.Sheet, error)

	// DeleteSheet removes a sheet and its payments.
	DeleteSheet(ctx context.Context, sheetID string) error

	// CreatePayment records a payment against an existing sheet.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsBySheet returns a sheet's payments, oldest first.
	ListPaymentsBySheet(ctx context.Context, sheetID string) ([]*models.Payment, error)

	// DeletePayment removes a payment by ID.
	DeletePayment(ctx context.Context, paymentID string) error

	// Close releases any resources held by the store.
	Close() error
}
