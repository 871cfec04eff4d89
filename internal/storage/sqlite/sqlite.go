// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/apacheta/apacheta/internal/models"
	"github.com/apacheta/apacheta/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas are applied by the driver on every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateSheet persists a new sheet and its participants in one transaction.
func (s *SQLiteStore) CreateSheet(ctx context.Context, sheet *models.Sheet) error {
	if sheet.ID == "" {
		sheet.ID = uuid.New().String()
	}
	if sheet.CreatedAt == 0 {
		sheet.CreatedAt = time.Now().Unix()
	}
	if sheet.Title == "" {
		sheet.Title = generateTitle(sheet.Names())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sheets (id, title, created_at) VALUES (?, ?, ?)",
		sheet.ID, sheet.Title, sheet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sheet: %w", err)
	}

	for i := range sheet.Participants {
		p := &sheet.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO sheet_participants (sheet_id, id, position, name, amount_paid) VALUES (?, ?, ?, ?, ?)",
			sheet.ID, p.ID, i, p.Name, p.AmountPaid.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSheet retrieves a sheet by ID, including its participants.
func (s *SQLiteStore) GetSheet(ctx context.Context, sheetID string) (*models.Sheet, error) {
	sheet := &models.Sheet{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, created_at FROM sheets WHERE id = ?",
		sheetID,
	).Scan(&sheet.ID, &sheet.Title, &sheet.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sheet %s: %w", sheetID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	if err := s.loadParticipants(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// ListSheets retrieves all sheets, newest first.
func (s *SQLiteStore) ListSheets(ctx context.Context) ([]*models.Sheet, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, created_at FROM sheets ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	defer rows.Close()

	var sheets []*models.Sheet
	for rows.Next() {
		sheet := &models.Sheet{}
		if err := rows.Scan(&sheet.ID, &sheet.Title, &sheet.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheets: %w", err)
	}

	for _, sheet := range sheets {
		if err := s.loadParticipants(ctx, sheet); err != nil {
			return nil, err
		}
	}
	return sheets, nil
}

// DeleteSheet removes a sheet; participants and payments cascade.
func (s *SQLiteStore) DeleteSheet(ctx context.Context, sheetID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sheets WHERE id = ?", sheetID)
	if err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sheet %s: %w", sheetID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, sheet *models.Sheet) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount_paid FROM sheet_participants WHERE sheet_id = ? ORDER BY position",
		sheet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.SheetParticipant
		if err := rows.Scan(&p.ID, &p.Name, &p.AmountPaid); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		sheet.Participants = append(sheet.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

// generateTitle creates an auto-generated title from participant names.
func generateTitle(names []string) string {
	if len(names) == 0 {
		return fmt.Sprintf("Split - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
