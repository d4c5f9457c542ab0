package models

import "github.com/shopspring/decimal"

// CounterpartyBalance is one entry of a user's pairwise balance view.
type CounterpartyBalance struct {
	// UserID is the counterparty.
	UserID string `json:"user_id"`

	// UserName is the counterparty's display name.
	UserName string `json:"user_name"`

	// Amount is signed: positive = counterparty owes the querying user,
	// negative = the querying user owes the counterparty.
	Amount decimal.Decimal `json:"amount"`

	// Currency labels the amount; it is the summary's resolved currency,
	// not computed per counterparty.
	Currency string `json:"currency"`
}

// BalanceSummary is the pairwise balance view for one user, either across
// all their activity or scoped to a single group.
type BalanceSummary struct {
	// TotalOwed is the sum of all positive counterparty balances.
	TotalOwed decimal.Decimal `json:"total_owed"`

	// TotalOwe is the sum of absolute values of all negative balances.
	TotalOwe decimal.Decimal `json:"total_owe"`

	// NetBalance is TotalOwed - TotalOwe.
	NetBalance decimal.Decimal `json:"net_balance"`

	// Currency is the querying user's preferred currency ("USD" if unset).
	Currency string `json:"currency"`

	// Balances is sorted by descending absolute amount. Entries with
	// |amount| < 0.01 are treated as settled and omitted.
	Balances []CounterpartyBalance `json:"balances"`
}

// SimplifiedDebt is one directed transfer in a simplified settlement plan:
// FromUser pays ToUser Amount to clear debts inside the group.
type SimplifiedDebt struct {
	FromUserID   string          `json:"from_user_id"`
	FromUserName string          `json:"from_user_name"`
	ToUserID     string          `json:"to_user_id"`
	ToUserName   string          `json:"to_user_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}
