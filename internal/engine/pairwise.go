package engine

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

// counterparty accumulates one pairwise balance while folding transactions.
type counterparty struct {
	name  string
	cents money.Cents
}

// pairwiseNetBalances folds expenses and payments into a per-counterparty
// balance map for one user. Positive = counterparty owes the user, negative
// = the user owes the counterparty.
//
// A completed payment is debt-reducing here: the sender's balance entry for
// the receiver goes up (their debt shrinks), and the receiver's entry for
// the sender goes down. This is intentionally NOT the convention used by
// singleAxisNetBalances.
func pairwiseNetBalances(userID string, expenses []models.Expense, payments []models.Payment) map[string]*counterparty {
	balances := make(map[string]*counterparty)

	get := func(id, name string) *counterparty {
		cp, ok := balances[id]
		if !ok {
			cp = &counterparty{name: name}
			balances[id] = cp
		}
		if cp.name == "" {
			cp.name = name
		}
		return cp
	}

	for _, expense := range expenses {
		if expense.PayerID == userID {
			// The user paid; everyone else's split is owed to them.
			for _, split := range expense.Splits {
				if split.UserID == userID {
					continue
				}
				get(split.UserID, split.UserName).cents += money.ToCents(split.Amount)
			}
			continue
		}
		// The user owes their own split to the payer.
		for _, split := range expense.Splits {
			if split.UserID == userID {
				get(expense.PayerID, expense.PayerName).cents -= money.ToCents(split.Amount)
			}
		}
	}

	for _, payment := range payments {
		if payment.Status != models.PaymentCompleted {
			continue
		}
		switch userID {
		case payment.FromUserID:
			get(payment.ToUserID, payment.ToUserName).cents += money.ToCents(payment.Amount)
		case payment.ToUserID:
			get(payment.FromUserID, payment.FromUserName).cents -= money.ToCents(payment.Amount)
		}
	}

	return balances
}

// buildSummary shapes a pairwise balance map into the returned summary:
// near-zero entries dropped, totals computed, entries sorted by descending
// absolute amount (ties broken by user ID for determinism).
func buildSummary(balances map[string]*counterparty, currency string) *models.BalanceSummary {
	var entries []models.CounterpartyBalance
	var totalOwed, totalOwe money.Cents

	for id, cp := range balances {
		if cp.cents.Abs() < 1 {
			continue // settled
		}
		if cp.cents > 0 {
			totalOwed += cp.cents
		} else {
			totalOwe += -cp.cents
		}
		entries = append(entries, models.CounterpartyBalance{
			UserID:   id,
			UserName: cp.name,
			Amount:   cp.cents.Decimal(),
			Currency: currency,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		ai, aj := entries[i].Amount.Abs(), entries[j].Amount.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return entries[i].UserID < entries[j].UserID
	})

	return &models.BalanceSummary{
		TotalOwed:  totalOwed.Decimal(),
		TotalOwe:   totalOwe.Decimal(),
		NetBalance: (totalOwed - totalOwe).Decimal(),
		Currency:   currency,
		Balances:   entries,
	}
}
