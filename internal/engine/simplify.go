package engine

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

// party is one side of the greedy match: a member with a remaining amount
// to pay or collect, always stored positive.
type party struct {
	id    string
	name  string
	cents money.Cents
}

// simplify turns single-axis scalars into a minimal list of directed
// transfers using a two-pointer greedy match of the largest remaining
// debtor against the largest remaining creditor. It emits at most
// memberCount-1 transfers; output order follows match order.
func simplify(scalars map[string]money.Cents, names map[string]string, currency string) []models.SimplifiedDebt {
	var creditors, debtors []party
	for id, cents := range scalars {
		switch {
		case cents > 1:
			creditors = append(creditors, party{id: id, name: names[id], cents: cents})
		case cents < -1:
			debtors = append(debtors, party{id: id, name: names[id], cents: -cents})
		}
	}

	byAmountDesc := func(parties []party) func(i, j int) bool {
		return func(i, j int) bool {
			if parties[i].cents != parties[j].cents {
				return parties[i].cents > parties[j].cents
			}
			return parties[i].id < parties[j].id
		}
	}
	sort.Slice(creditors, byAmountDesc(creditors))
	sort.Slice(debtors, byAmountDesc(debtors))

	debts := make([]models.SimplifiedDebt, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		settle := debtor.cents
		if creditor.cents < settle {
			settle = creditor.cents
		}

		if settle > 1 {
			debts = append(debts, models.SimplifiedDebt{
				FromUserID:   debtor.id,
				FromUserName: debtor.name,
				ToUserID:     creditor.id,
				ToUserName:   creditor.name,
				Amount:       settle.Decimal(),
				Currency:     currency,
			})
		}

		debtor.cents -= settle
		creditor.cents -= settle

		// Advance whichever side dropped below the settlement threshold;
		// both can advance when the match was exact.
		if debtor.cents < 1 {
			i++
		}
		if creditor.cents < 1 {
			j++
		}
	}

	return debts
}
