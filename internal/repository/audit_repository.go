package repository

import (
	"context"
	"database/sql"
	"time"
)

// AuditRepo provides append and read access to the BookingAudit table.
// The table is append-only: this repository exposes no update or delete.
type AuditRepo struct{ db *sql.DB }

// NewAuditRepo returns a new AuditRepo bound to the given database.
func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

// InsertTx appends one audit row inside the transaction that performed
// the status change. Every path that mutates Booking.BookingStatus must
// call this when old and new status differ, so the audit trail stays
// complete if further transitions are ever added.
func (r *AuditRepo) InsertTx(ctx context.Context, tx *sql.Tx, bookingID uint64, action, oldStatus, newStatus, userEmail string) error {
	const q = `INSERT INTO BookingAudit (BookingID, ActionType, OldStatus, NewStatus, UserEmail)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, bookingID, action, oldStatus, newStatus, userEmail)
	return err
}

// AuditEntry is the wire shape of one audit row.
type AuditEntry struct {
	AuditID    uint64 `json:"AuditID"`
	BookingID  uint64 `json:"BookingID"`
	ActionType string `json:"ActionType"`
	OldStatus  string `json:"OldStatus"`
	NewStatus  string `json:"NewStatus"`
	ChangeDate string `json:"ChangeDate"`
	UserEmail  string `json:"UserEmail"`
}

// ListRecent returns the newest audit rows up to limit.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	const q = `SELECT AuditID, BookingID, COALESCE(ActionType, ''), COALESCE(OldStatus, ''),
	                  COALESCE(NewStatus, ''), ChangeDate, COALESCE(UserEmail, '')
	           FROM BookingAudit ORDER BY ChangeDate DESC LIMIT ?`
	return r.scanEntries(r.db.QueryContext(ctx, q, limit))
}

// ListByBooking returns all audit rows for one booking, newest first.
func (r *AuditRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]AuditEntry, error) {
	const q = `SELECT AuditID, BookingID, COALESCE(ActionType, ''), COALESCE(OldStatus, ''),
	                  COALESCE(NewStatus, ''), ChangeDate, COALESCE(UserEmail, '')
	           FROM BookingAudit WHERE BookingID = ? ORDER BY ChangeDate DESC`
	return r.scanEntries(r.db.QueryContext(ctx, q, bookingID))
}

func (r *AuditRepo) scanEntries(rows *sql.Rows, err error) ([]AuditEntry, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AuditEntry, 0)
	for rows.Next() {
		var e AuditEntry
		var changed time.Time
		if err := rows.Scan(&e.AuditID, &e.BookingID, &e.ActionType, &e.OldStatus,
			&e.NewStatus, &changed, &e.UserEmail); err != nil {
			return nil, err
		}
		e.ChangeDate = changed.UTC().Format(time.RFC3339)
		out = append(out, e)
	}
	return out, rows.Err()
}
