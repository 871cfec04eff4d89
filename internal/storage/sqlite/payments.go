package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apacheta/apacheta/internal/models"
	"github.com/apacheta/apacheta/internal/storage"
)

// CreatePayment persists a new payment. The sheet must exist.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM sheets WHERE id = ?", payment.SheetID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sheet %s: %w", payment.SheetID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check sheet existence: %w", err)
	}

	var note any
	if payment.Note != "" {
		note = payment.Note
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO payments (id, sheet_id, from_id, to_id, amount, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.SheetID, payment.FromID, payment.ToID,
		payment.Amount.String(), note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPaymentsBySheet retrieves all payments for a sheet in the order they were recorded.
func (s *SQLiteStore) ListPaymentsBySheet(ctx context.Context, sheetID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sheet_id, from_id, to_id, amount, note, created_at
		 FROM payments WHERE sheet_id = ? ORDER BY created_at, rowid`,
		sheetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by sheet: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var note sql.NullString

		if err := rows.Scan(&payment.ID, &payment.SheetID, &payment.FromID, &payment.ToID,
			&payment.Amount, &note, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		if note.Valid {
			payment.Note = note.String
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// DeletePayment removes a payment by ID.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}
