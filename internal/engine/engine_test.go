package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

// fakeRepo is an in-memory Repository fixture.
type fakeRepo struct {
	memberships map[string]bool // "groupID/userID"
	members     map[string][]models.Member
	expenses    map[string][]models.Expense // keyed by scope id
	payments    map[string][]models.Payment
	currencies  map[string]string
}

func (f *fakeRepo) GetMembership(_ context.Context, groupID, userID string) (*models.Membership, error) {
	if f.memberships[groupID+"/"+userID] {
		return &models.Membership{GroupID: groupID, UserID: userID}, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListMembers(_ context.Context, groupID string) ([]models.Member, error) {
	return f.members[groupID], nil
}

func (f *fakeRepo) ListUserExpenses(_ context.Context, userID string) ([]models.Expense, error) {
	return f.expenses[userID], nil
}

func (f *fakeRepo) ListGroupExpenses(_ context.Context, groupID string) ([]models.Expense, error) {
	return f.expenses[groupID], nil
}

func (f *fakeRepo) ListUserPayments(_ context.Context, userID string) ([]models.Payment, error) {
	return f.payments[userID], nil
}

func (f *fakeRepo) ListGroupPayments(_ context.Context, groupID string) ([]models.Payment, error) {
	return f.payments[groupID], nil
}

func (f *fakeRepo) PreferredCurrency(_ context.Context, userID string) (string, error) {
	return f.currencies[userID], nil
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		memberships: make(map[string]bool),
		members:     make(map[string][]models.Member),
		expenses:    make(map[string][]models.Expense),
		payments:    make(map[string][]models.Payment),
		currencies:  make(map[string]string),
	}
}

func TestGroupQueriesRequireMembership(t *testing.T) {
	repo := newFakeRepo()
	repo.memberships["trip/alice"] = true
	eng := New(repo)
	ctx := context.Background()

	if _, err := eng.GetGroupBalances(ctx, "trip", "mallory"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("GetGroupBalances for non-member: err = %v, want ErrAccessDenied", err)
	}
	if _, err := eng.SimplifyDebts(ctx, "trip", "mallory"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("SimplifyDebts for non-member: err = %v, want ErrAccessDenied", err)
	}
	// An unknown group has no membership records either.
	if _, err := eng.GetGroupBalances(ctx, "nope", "alice"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("GetGroupBalances for unknown group: err = %v, want ErrAccessDenied", err)
	}

	if _, err := eng.GetGroupBalances(ctx, "trip", "alice"); err != nil {
		t.Errorf("GetGroupBalances for member failed: %v", err)
	}
}

func TestGetUserBalancesResolvesCurrency(t *testing.T) {
	repo := newFakeRepo()
	eng := New(repo)
	ctx := context.Background()

	summary, err := eng.GetUserBalances(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserBalances failed: %v", err)
	}
	if summary.Currency != "USD" {
		t.Errorf("default currency = %q, want USD", summary.Currency)
	}

	repo.currencies["alice"] = "GBP"
	summary, err = eng.GetUserBalances(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserBalances failed: %v", err)
	}
	if summary.Currency != "GBP" {
		t.Errorf("currency = %q, want GBP", summary.Currency)
	}
}

func TestGetUserBalancesSpansGroups(t *testing.T) {
	repo := newFakeRepo()
	repo.expenses["alice"] = []models.Expense{
		{
			GroupID: "trip", PayerID: "alice", PayerName: "Alice", Amount: dec("100"),
			Splits: []models.ExpenseSplit{
				{UserID: "alice", UserName: "Alice", Amount: dec("50")},
				{UserID: "bob", UserName: "Bob", Amount: dec("50")},
			},
		},
		{
			GroupID: "flat", PayerID: "bob", PayerName: "Bob", Amount: dec("40"),
			Splits: []models.ExpenseSplit{
				{UserID: "alice", UserName: "Alice", Amount: dec("20")},
				{UserID: "bob", UserName: "Bob", Amount: dec("20")},
			},
		},
	}
	eng := New(repo)

	summary, err := eng.GetUserBalances(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserBalances failed: %v", err)
	}
	if len(summary.Balances) != 1 {
		t.Fatalf("got %d balances, want bob only", len(summary.Balances))
	}
	if !summary.Balances[0].Amount.Equal(dec("30")) {
		t.Errorf("bob balance = %s, want 30", summary.Balances[0].Amount)
	}
	if !summary.NetBalance.Equal(dec("30")) {
		t.Errorf("NetBalance = %s, want 30", summary.NetBalance)
	}
}

func TestSimplifyDebtsUsesFirstMemberCurrency(t *testing.T) {
	repo := newFakeRepo()
	repo.memberships["trip/alice"] = true
	repo.members["trip"] = []models.Member{
		{UserID: "alice", DisplayName: "Alice", PreferredCurrency: "EUR"},
		{UserID: "bob", DisplayName: "Bob", PreferredCurrency: "JPY"},
	}
	repo.expenses["trip"] = []models.Expense{
		{
			PayerID: "alice", PayerName: "Alice", Amount: dec("100"),
			Splits: []models.ExpenseSplit{
				{UserID: "alice", UserName: "Alice", Amount: dec("50")},
				{UserID: "bob", UserName: "Bob", Amount: dec("50")},
			},
		},
	}
	eng := New(repo)

	debts, err := eng.SimplifyDebts(context.Background(), "trip", "alice")
	if err != nil {
		t.Fatalf("SimplifyDebts failed: %v", err)
	}
	if len(debts) != 1 {
		t.Fatalf("got %d debts, want 1", len(debts))
	}
	if debts[0].Currency != "EUR" {
		t.Errorf("currency = %q, want first member's EUR", debts[0].Currency)
	}
	if debts[0].FromUserName != "Bob" || debts[0].ToUserName != "Alice" {
		t.Errorf("debt = %+v, want Bob -> Alice", debts[0])
	}
}

func TestSimplifyDebtsEmptyGroup(t *testing.T) {
	repo := newFakeRepo()
	repo.memberships["trip/alice"] = true
	repo.members["trip"] = []models.Member{{UserID: "alice", DisplayName: "Alice"}}
	eng := New(repo)

	debts, err := eng.SimplifyDebts(context.Background(), "trip", "alice")
	if err != nil {
		t.Fatalf("SimplifyDebts failed: %v", err)
	}
	if len(debts) != 0 {
		t.Errorf("got %d debts for an idle group, want 0", len(debts))
	}
}
