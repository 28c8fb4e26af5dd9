package model

// Payment status values stored in PaymentTransaction.PaymentStatus.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// ValidPaymentStatus reports whether s is one of the three stored payment
// states. Handlers validate with this before touching the database.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}
