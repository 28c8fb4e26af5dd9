package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The statements below ensure the tables the booking lifecycle writes to
// exist before the server starts taking requests. The base travel tables
// (User, Hotel, Booking, Destination, Itinerary, Includes) come from the
// provisioning script; the audit, payment and email-log tables were
// historically created lazily and are kept idempotent here. Conflict
// prevention, cost calculation and auditing live in application
// transactions, not in database triggers or procedures, so no routines
// are installed.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS BookingAudit (
		AuditID INT PRIMARY KEY AUTO_INCREMENT,
		BookingID INT NOT NULL,
		ActionType VARCHAR(50),
		OldStatus VARCHAR(50),
		NewStatus VARCHAR(50),
		ChangeDate TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UserEmail VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS PaymentTransaction (
		TransactionID INT PRIMARY KEY AUTO_INCREMENT,
		BookingID INT NOT NULL,
		Amount DECIMAL(12, 2) NOT NULL,
		PaymentStatus VARCHAR(50) DEFAULT 'Pending' CHECK (PaymentStatus IN ('Pending', 'Completed', 'Failed')),
		TransactionDate TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (BookingID) REFERENCES Booking(BookingID) ON DELETE CASCADE ON UPDATE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS EmailLog (
		EmailID INT PRIMARY KEY AUTO_INCREMENT,
		RecipientEmail VARCHAR(255) NOT NULL,
		RecipientName VARCHAR(255),
		Subject VARCHAR(255),
		Body TEXT,
		SentAt TIMESTAMP NULL DEFAULT NULL,
		Status VARCHAR(50) DEFAULT 'Pending'
	)`,
}

// EnsureSchema creates the lifecycle side-effect tables when missing and
// adds the derived columns older provisioning scripts did not have. All
// statements are idempotent, so running it on every boot is safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if err := ensureColumn(ctx, db, "User", "TotalBookings", "INT DEFAULT 0"); err != nil {
		return err
	}
	if err := ensureColumn(ctx, db, "Hotel", "AvailableRooms", "INT DEFAULT 0"); err != nil {
		return err
	}
	return nil
}

// ensureColumn adds a column when the information schema says it is
// absent. MySQL has no ADD COLUMN IF NOT EXISTS, hence the lookup.
func ensureColumn(ctx context.Context, db *sql.DB, table, column, definition string) error {
	const q = `SELECT COUNT(*) FROM INFORMATION_SCHEMA.COLUMNS
	           WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`
	var n int
	if err := db.QueryRowContext(ctx, q, table, column).Scan(&n); err != nil {
		return fmt.Errorf("ensure column %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return nil
	}
	alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)
	if _, err := db.ExecContext(ctx, alter); err != nil {
		return fmt.Errorf("ensure column %s.%s: %w", table, column, err)
	}
	return nil
}
