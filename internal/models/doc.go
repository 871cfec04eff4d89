// Package models defines the core domain models for Apacheta's bill splitting.
//
// # Models
//
//   - Sheet: a saved split with the people who took part and what
//     each one paid
//   - SheetParticipant: one person on a sheet
//   - Payment: a transfer that has already happened between two participants
//
// Suggested settlements are never stored. They are recomputed from the sheet
// and its payments every time the sheet is read, so editing a payment can
// never leave stale suggestions behind.
//
// # Design Principles
//
//  1. Amounts are decimal.Decimal, never float64
//  2. Relationships use ID strings instead of pointers
//  3. Participant IDs are unique within a sheet
package models
