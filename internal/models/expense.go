package models

import "github.com/shopspring/decimal"

// Expense represents a shared expense paid by one user and split among
// participants. The split amounts are validated at creation time to sum to
// the expense amount; the balance engine trusts them as-is.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to. Empty for expenses
	// recorded directly between users outside any group.
	GroupID string

	// Description is a short human-readable label (e.g., "Dinner").
	Description string

	// Amount is the full expense amount, always positive.
	Amount decimal.Decimal

	// Currency is the 3-letter currency code of the amount.
	Currency string

	// PayerID is the user who paid the expense.
	PayerID string

	// PayerName is the payer's resolved display name.
	PayerName string

	// Splits is the per-participant breakdown of the amount. The payer's
	// own share appears here too.
	Splits []ExpenseSplit

	// CreatedBy is the user ID who recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is one participant's share of an expense.
type ExpenseSplit struct {
	// UserID is the participant who owes this share.
	UserID string

	// UserName is the participant's resolved display name.
	UserName string

	// Amount is the share owed by UserID for this expense.
	Amount decimal.Decimal
}
