package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store *SQLiteStore, email, name, currency string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	user.PreferredCurrency = currency
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice", "EUR")
	bob := seedUser(t, store, "bob@example.com", "Bob", "")

	group := &models.Group{Name: "Trip", CreatedBy: alice.ID}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Fatal("Expected group ID to be generated")
	}
	if err := store.AddMember(ctx, group.ID, bob.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	t.Run("users round trip", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != alice.ID || got.PreferredCurrency != "EUR" {
			t.Errorf("got %+v, want alice with EUR", got)
		}

		missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil || missing != nil {
			t.Errorf("missing user: got %+v, %v; want nil, nil", missing, err)
		}
	})

	t.Run("preferred currency lookup", func(t *testing.T) {
		currency, err := store.PreferredCurrency(ctx, alice.ID)
		if err != nil || currency != "EUR" {
			t.Errorf("got %q, %v; want EUR", currency, err)
		}
		currency, err = store.PreferredCurrency(ctx, bob.ID)
		if err != nil || currency != "" {
			t.Errorf("unset currency: got %q, %v; want empty", currency, err)
		}
	})

	t.Run("membership guard data", func(t *testing.T) {
		m, err := store.GetMembership(ctx, group.ID, alice.ID)
		if err != nil || m == nil {
			t.Fatalf("creator membership: got %+v, %v", m, err)
		}
		m, err = store.GetMembership(ctx, group.ID, "stranger")
		if err != nil || m != nil {
			t.Errorf("stranger membership: got %+v, %v; want nil, nil", m, err)
		}
	})

	t.Run("members keep join order", func(t *testing.T) {
		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("got %d members, want 2", len(members))
		}
		if members[0].UserID != alice.ID {
			t.Errorf("first member = %s, want creator %s", members[0].UserID, alice.ID)
		}
		if members[0].PreferredCurrency != "EUR" || members[0].DisplayName != "Alice" {
			t.Errorf("member data not resolved: %+v", members[0])
		}
	})

	t.Run("same-second joins keep insertion order", func(t *testing.T) {
		// joined_at has second granularity, so a burst of joins all tie on
		// the timestamp. Order must still follow insertion, not user ID.
		burst := &models.Group{Name: "Burst", CreatedBy: alice.ID}
		if err := store.CreateGroup(ctx, burst); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		var added []string
		for i := 0; i < 8; i++ {
			u := seedUser(t, store, fmt.Sprintf("burst%d@example.com", i), "Burst", "")
			if err := store.AddMember(ctx, burst.ID, u.ID); err != nil {
				t.Fatalf("AddMember failed: %v", err)
			}
			added = append(added, u.ID)
		}

		members, err := store.ListMembers(ctx, burst.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != len(added)+1 {
			t.Fatalf("got %d members, want %d", len(members), len(added)+1)
		}
		if members[0].UserID != alice.ID {
			t.Errorf("first member = %s, want creator %s", members[0].UserID, alice.ID)
		}
		for i, id := range added {
			if members[i+1].UserID != id {
				t.Errorf("member[%d] = %s, want %s (insertion order)", i+1, members[i+1].UserID, id)
			}
		}
	})

	t.Run("expenses round trip with splits and names", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Dinner",
			Amount:      dec("60.50"),
			Currency:    "EUR",
			PayerID:     alice.ID,
			CreatedBy:   alice.ID,
			Splits: []models.ExpenseSplit{
				{UserID: alice.ID, Amount: dec("30.25")},
				{UserID: bob.ID, Amount: dec("30.25")},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(dec("60.50")) || got.PayerName != "Alice" {
			t.Errorf("expense = %+v", got)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("got %d splits, want 2", len(got.Splits))
		}
		for _, split := range got.Splits {
			if split.UserName == "" {
				t.Errorf("split name not resolved: %+v", split)
			}
			if !split.Amount.Equal(dec("30.25")) {
				t.Errorf("split amount = %s, want 30.25", split.Amount)
			}
		}

		byGroup, err := store.ListGroupExpenses(ctx, group.ID)
		if err != nil || len(byGroup) != 1 {
			t.Errorf("ListGroupExpenses: got %d, %v; want 1", len(byGroup), err)
		}
		byUser, err := store.ListUserExpenses(ctx, bob.ID)
		if err != nil || len(byUser) != 1 {
			t.Errorf("ListUserExpenses as participant: got %d, %v; want 1", len(byUser), err)
		}
	})

	t.Run("payments round trip and status transitions", func(t *testing.T) {
		payment := &models.Payment{
			GroupID:    group.ID,
			FromUserID: bob.ID,
			ToUserID:   alice.ID,
			Amount:     dec("30.25"),
			Currency:   "EUR",
			Note:       "settling dinner",
		}
		if err := store.CreatePayment(ctx, payment); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		got, err := store.GetPayment(ctx, payment.ID)
		if err != nil {
			t.Fatalf("GetPayment failed: %v", err)
		}
		if got.Status != models.PaymentPending {
			t.Errorf("default status = %s, want PENDING", got.Status)
		}
		if got.FromUserName != "Bob" || got.ToUserName != "Alice" {
			t.Errorf("names not resolved: %+v", got)
		}
		if !got.Amount.Equal(dec("30.25")) {
			t.Errorf("amount = %s, want 30.25", got.Amount)
		}

		if err := store.SetPaymentStatus(ctx, payment.ID, models.PaymentCompleted); err != nil {
			t.Fatalf("SetPaymentStatus failed: %v", err)
		}
		got, err = store.GetPayment(ctx, payment.ID)
		if err != nil || got.Status != models.PaymentCompleted {
			t.Errorf("after transition: %+v, %v", got, err)
		}

		byGroup, err := store.ListGroupPayments(ctx, group.ID)
		if err != nil || len(byGroup) != 1 {
			t.Errorf("ListGroupPayments: got %d, %v; want 1", len(byGroup), err)
		}
		byUser, err := store.ListUserPayments(ctx, alice.ID)
		if err != nil || len(byUser) != 1 {
			t.Errorf("ListUserPayments: got %d, %v; want 1", len(byUser), err)
		}
	})

	t.Run("not found errors", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup: err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetExpense(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense: err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetPayment(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPayment: err = %v, want ErrNotFound", err)
		}
		if err := store.SetPaymentStatus(ctx, "nope", models.PaymentFailed); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("SetPaymentStatus: err = %v, want ErrNotFound", err)
		}
	})
}
