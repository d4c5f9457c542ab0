package models

import "github.com/shopspring/decimal"

// PaymentStatus is the lifecycle state of a settlement payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Payment represents a recorded transfer of money between two users.
// Only COMPLETED payments participate in balance computation; every other
// status is invisible to the balance engine.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment settles debts in. Empty for
	// payments between users outside any group.
	GroupID string

	// FromUserID is the user who sent the money (debtor settling up).
	FromUserID string

	// FromUserName is the sender's resolved display name.
	FromUserName string

	// ToUserID is the user who received the money (creditor being paid).
	ToUserID string

	// ToUserName is the receiver's resolved display name.
	ToUserName string

	// Amount is the payment amount, always positive.
	Amount decimal.Decimal

	// Currency is the 3-letter currency code of the amount.
	Currency string

	// Status is the payment lifecycle state.
	Status PaymentStatus

	// Note is an optional description for the payment.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
