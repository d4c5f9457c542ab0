package engine

import (
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

// singleAxisNetBalances computes one scalar per group member: their
// aggregate net position ignoring counterparty identity. Positive =
// creditor, negative = debtor. The sum over all members is zero by
// construction, since every expense and payment contributes equal and
// opposite amounts.
//
// A completed payment subtracts from the sender and adds to the receiver,
// mirroring the expense payer/split bookkeeping rather than the
// debt-reducing convention of pairwiseNetBalances. The two views disagree on
// purpose; see the package comment.
func singleAxisNetBalances(members []models.Member, expenses []models.Expense, payments []models.Payment) (map[string]money.Cents, map[string]string) {
	scalars := make(map[string]money.Cents, len(members))
	names := make(map[string]string, len(members))

	for _, m := range members {
		scalars[m.UserID] = 0
		names[m.UserID] = m.DisplayName
	}

	note := func(id, name string) {
		if _, ok := scalars[id]; !ok {
			scalars[id] = 0
		}
		if names[id] == "" {
			names[id] = name
		}
	}

	for _, expense := range expenses {
		note(expense.PayerID, expense.PayerName)
		scalars[expense.PayerID] += money.ToCents(expense.Amount)
		for _, split := range expense.Splits {
			note(split.UserID, split.UserName)
			scalars[split.UserID] -= money.ToCents(split.Amount)
		}
	}

	for _, payment := range payments {
		if payment.Status != models.PaymentCompleted {
			continue
		}
		note(payment.FromUserID, payment.FromUserName)
		note(payment.ToUserID, payment.ToUserName)
		scalars[payment.FromUserID] -= money.ToCents(payment.Amount)
		scalars[payment.ToUserID] += money.ToCents(payment.Amount)
	}

	return scalars, names
}
