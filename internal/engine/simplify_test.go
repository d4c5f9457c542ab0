package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

func members(names ...string) []models.Member {
	out := make([]models.Member, len(names))
	for i, n := range names {
		out[i] = models.Member{UserID: n, DisplayName: n}
	}
	return out
}

func TestSimplifyDebtsScenarios(t *testing.T) {
	tests := []struct {
		name     string
		members  []models.Member
		expenses []models.Expense
		payments []models.Payment
		want     []models.SimplifiedDebt
	}{
		{
			// A pays 100 split A:50, B:50 -> B pays A 50.
			name:    "two-way even split",
			members: members("a", "b"),
			expenses: []models.Expense{
				{
					PayerID: "a", PayerName: "a", Amount: dec("100"),
					Splits: []models.ExpenseSplit{
						{UserID: "a", UserName: "a", Amount: dec("50")},
						{UserID: "b", UserName: "b", Amount: dec("50")},
					},
				},
			},
			want: []models.SimplifiedDebt{
				{FromUserID: "b", ToUserID: "a", Amount: dec("50")},
			},
		},
		{
			// A pays 90 split three ways -> two transfers of 30 to A.
			name:    "three-way even split",
			members: members("a", "b", "c"),
			expenses: []models.Expense{
				{
					PayerID: "a", PayerName: "a", Amount: dec("90"),
					Splits: []models.ExpenseSplit{
						{UserID: "a", UserName: "a", Amount: dec("30")},
						{UserID: "b", UserName: "b", Amount: dec("30")},
						{UserID: "c", UserName: "c", Amount: dec("30")},
					},
				},
			},
			want: []models.SimplifiedDebt{
				{FromUserID: "b", ToUserID: "a", Amount: dec("30")},
				{FromUserID: "c", ToUserID: "a", Amount: dec("30")},
			},
		},
		{
			// A pays 60 {A:20,B:20,C:20}; B pays 30 {B:15,C:15}.
			// Scalars: A +40, B -5, C -35. Largest debtor matches first.
			name:    "two expenses with overlapping participants",
			members: members("a", "b", "c"),
			expenses: []models.Expense{
				{
					PayerID: "a", PayerName: "a", Amount: dec("60"),
					Splits: []models.ExpenseSplit{
						{UserID: "a", UserName: "a", Amount: dec("20")},
						{UserID: "b", UserName: "b", Amount: dec("20")},
						{UserID: "c", UserName: "c", Amount: dec("20")},
					},
				},
				{
					PayerID: "b", PayerName: "b", Amount: dec("30"),
					Splits: []models.ExpenseSplit{
						{UserID: "b", UserName: "b", Amount: dec("15")},
						{UserID: "c", UserName: "c", Amount: dec("15")},
					},
				},
			},
			want: []models.SimplifiedDebt{
				{FromUserID: "c", ToUserID: "a", Amount: dec("35")},
				{FromUserID: "b", ToUserID: "a", Amount: dec("5")},
			},
		},
		{
			name:    "no activity yields no transfers",
			members: members("a", "b", "c"),
			want:    []models.SimplifiedDebt{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scalars, names := singleAxisNetBalances(tt.members, tt.expenses, tt.payments)
			got := simplify(scalars, names, "USD")

			if len(got) != len(tt.want) {
				t.Fatalf("got %d debts %+v, want %d", len(got), got, len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].FromUserID != want.FromUserID || got[i].ToUserID != want.ToUserID {
					t.Errorf("debt[%d] = %s->%s, want %s->%s",
						i, got[i].FromUserID, got[i].ToUserID, want.FromUserID, want.ToUserID)
				}
				if !got[i].Amount.Equal(want.Amount) {
					t.Errorf("debt[%d] amount = %s, want %s", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

// A completed group payment subtracts from the sender's scalar and adds to
// the receiver's. This matches the reference behavior and its tests; it is
// deliberately different from the debt-reducing pairwise view.
func TestSingleAxisPaymentIsAdditive(t *testing.T) {
	expenses := []models.Expense{
		{
			PayerID: "a", PayerName: "a", Amount: dec("100"),
			Splits: []models.ExpenseSplit{
				{UserID: "a", UserName: "a", Amount: dec("50")},
				{UserID: "b", UserName: "b", Amount: dec("50")},
			},
		},
	}
	payments := []models.Payment{
		{FromUserID: "b", FromUserName: "b", ToUserID: "a", ToUserName: "a",
			Amount: dec("50"), Status: models.PaymentCompleted},
	}

	scalars, _ := singleAxisNetBalances(members("a", "b"), expenses, payments)

	if scalars["a"] != money.Cents(10000) {
		t.Errorf("a scalar = %d cents, want 10000", scalars["a"])
	}
	if scalars["b"] != money.Cents(-10000) {
		t.Errorf("b scalar = %d cents, want -10000", scalars["b"])
	}

	// Pending payments stay invisible either way.
	payments[0].Status = models.PaymentPending
	scalars, _ = singleAxisNetBalances(members("a", "b"), expenses, payments)
	if scalars["a"] != money.Cents(5000) || scalars["b"] != money.Cents(-5000) {
		t.Errorf("pending payment changed scalars: a=%d b=%d", scalars["a"], scalars["b"])
	}
}

func TestSingleAxisSumsToZero(t *testing.T) {
	expenses := []models.Expense{
		{
			PayerID: "a", PayerName: "a", Amount: dec("99.99"),
			Splits: []models.ExpenseSplit{
				{UserID: "a", UserName: "a", Amount: dec("33.33")},
				{UserID: "b", UserName: "b", Amount: dec("33.33")},
				{UserID: "c", UserName: "c", Amount: dec("33.33")},
			},
		},
		{
			PayerID: "c", PayerName: "c", Amount: dec("10.50"),
			Splits: []models.ExpenseSplit{
				{UserID: "b", UserName: "b", Amount: dec("5.25")},
				{UserID: "c", UserName: "c", Amount: dec("5.25")},
			},
		},
	}
	payments := []models.Payment{
		{FromUserID: "b", ToUserID: "a", Amount: dec("12.34"), Status: models.PaymentCompleted},
	}

	scalars, _ := singleAxisNetBalances(members("a", "b", "c"), expenses, payments)

	var sum money.Cents
	for _, cents := range scalars {
		sum += cents
	}
	if sum != 0 {
		t.Errorf("scalars sum to %d cents, want 0", sum)
	}
}

func TestSimplifyProperties(t *testing.T) {
	// Uneven scalars across five members; the plan must stay within
	// memberCount-1 transfers and pay every party off exactly.
	scalars := map[string]money.Cents{
		"a": 7000,
		"b": 3000,
		"c": -2500,
		"d": -4500,
		"e": -3000,
	}
	names := map[string]string{"a": "a", "b": "b", "c": "c", "d": "d", "e": "e"}

	debts := simplify(scalars, names, "EUR")

	if len(debts) > 4 {
		t.Fatalf("got %d transfers, want at most 4", len(debts))
	}

	incoming := make(map[string]decimal.Decimal)
	outgoing := make(map[string]decimal.Decimal)
	for _, d := range debts {
		if d.Currency != "EUR" {
			t.Errorf("debt currency = %q, want EUR", d.Currency)
		}
		if !d.Amount.IsPositive() {
			t.Errorf("non-positive transfer amount %s", d.Amount)
		}
		incoming[d.ToUserID] = incoming[d.ToUserID].Add(d.Amount)
		outgoing[d.FromUserID] = outgoing[d.FromUserID].Add(d.Amount)
	}

	for id, cents := range scalars {
		if cents > 0 && !incoming[id].Equal(cents.Decimal()) {
			t.Errorf("creditor %s receives %s, want %s", id, incoming[id], cents.Decimal())
		}
		if cents < 0 && !outgoing[id].Equal((-cents).Decimal()) {
			t.Errorf("debtor %s pays %s, want %s", id, outgoing[id], (-cents).Decimal())
		}
	}
}

func TestSimplifyIgnoresSubCentPositions(t *testing.T) {
	scalars := map[string]money.Cents{
		"a": 1,  // exactly 0.01: not a creditor
		"b": -1, // exactly -0.01: not a debtor
		"c": 0,
	}
	names := map[string]string{"a": "a", "b": "b", "c": "c"}

	if debts := simplify(scalars, names, "USD"); len(debts) != 0 {
		t.Errorf("got %d debts for sub-cent positions, want 0", len(debts))
	}
}
