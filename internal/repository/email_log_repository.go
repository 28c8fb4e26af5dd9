package repository

import (
	"context"
	"database/sql"
	"time"
)

// EmailLogRepo writes notification records to the EmailLog table. The
// queue consumer is its only writer; actual delivery is out of scope, so
// a row marked Sent documents what the notification would have said.
type EmailLogRepo struct{ db *sql.DB }

// NewEmailLogRepo returns a new EmailLogRepo bound to the given database.
func NewEmailLogRepo(db *sql.DB) *EmailLogRepo { return &EmailLogRepo{db: db} }

// InsertSent appends one sent notification row stamped with the current
// time.
func (r *EmailLogRepo) InsertSent(ctx context.Context, recipientEmail, recipientName, subject, body string) error {
	const q = `INSERT INTO EmailLog (RecipientEmail, RecipientName, Subject, Body, SentAt, Status)
	           VALUES (?, ?, ?, ?, ?, 'Sent')`
	_, err := r.db.ExecContext(ctx, q, recipientEmail, recipientName, subject, body, time.Now().UTC())
	return err
}
