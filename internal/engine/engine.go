// Package engine computes net balances and simplified settlement plans from
// an immutable snapshot of expenses and payments.
//
// The engine is pure: it performs no I/O beyond reads through the injected
// Repository, never mutates its inputs, and builds fresh accumulators per
// call, so concurrent invocations for different users or groups are
// independent.
//
// Payments are folded with two deliberately different sign conventions. The
// pairwise view treats a completed payment as debt-reducing between the two
// parties. The single-axis view used for debt simplification subtracts the
// amount from the sender's scalar and adds it to the receiver's, which can
// increase the apparent amount owed. The two views are kept as separate
// functions (pairwiseNetBalances, singleAxisNetBalances) on purpose; do not
// unify them without a product decision on settlement semantics.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrAccessDenied is returned when the requesting user is not a member of
// the group being queried. It is the only error the engine itself raises.
var ErrAccessDenied = errors.New("access denied: user is not a member of this group")

// DefaultCurrency labels results for users without a preferred currency.
const DefaultCurrency = "USD"

// Repository is the read-only capability set the engine needs. The
// surrounding system fetches the snapshot; the engine only folds it.
type Repository interface {
	// GetMembership returns the membership record for the pair, or
	// (nil, nil) when the user is not a member.
	GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error)

	// ListMembers enumerates a group's members ordered by joined-at with
	// ties broken by insertion order. The first member's preferred
	// currency labels simplified debts, so the order must be stable.
	ListMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// ListUserExpenses returns every expense involving the user, as payer
	// or as a split participant, across all groups.
	ListUserExpenses(ctx context.Context, userID string) ([]models.Expense, error)

	// ListGroupExpenses returns every expense recorded in the group.
	ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// ListUserPayments returns every payment involving the user as sender
	// or receiver, across all groups, regardless of status.
	ListUserPayments(ctx context.Context, userID string) ([]models.Payment, error)

	// ListGroupPayments returns every payment recorded in the group,
	// regardless of status.
	ListGroupPayments(ctx context.Context, groupID string) ([]models.Payment, error)

	// PreferredCurrency returns the user's preferred currency code, or ""
	// when unset.
	PreferredCurrency(ctx context.Context, userID string) (string, error)
}

// Engine answers balance and debt-simplification queries.
type Engine struct {
	repo Repository
}

// New creates an Engine backed by the given repository.
func New(repo Repository) *Engine {
	return &Engine{repo: repo}
}

// GetUserBalances returns the pairwise balance view for a user across all
// their expenses and payments. Self-scoped, so no access guard applies.
func (e *Engine) GetUserBalances(ctx context.Context, userID string) (*models.BalanceSummary, error) {
	expenses, err := e.repo.ListUserExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	payments, err := e.repo.ListUserPayments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	currency, err := e.resolveUserCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildSummary(pairwiseNetBalances(userID, expenses, payments), currency), nil
}

// GetGroupBalances returns the pairwise balance view for a user within one
// group. Fails with ErrAccessDenied when the user is not a group member.
func (e *Engine) GetGroupBalances(ctx context.Context, groupID, userID string) (*models.BalanceSummary, error) {
	if err := e.ensureMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	expenses, err := e.repo.ListGroupExpenses(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group expenses: %w", err)
	}
	payments, err := e.repo.ListGroupPayments(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group payments: %w", err)
	}
	currency, err := e.resolveUserCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildSummary(pairwiseNetBalances(userID, expenses, payments), currency), nil
}

// SimplifyDebts computes a settlement plan that clears all debts inside the
// group with at most memberCount-1 transfers. Fails with ErrAccessDenied
// when the requesting user is not a group member. The plan is derived, not
// persisted: it produces instructions, not ledger writes.
func (e *Engine) SimplifyDebts(ctx context.Context, groupID, userID string) ([]models.SimplifiedDebt, error) {
	if err := e.ensureMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	members, err := e.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	expenses, err := e.repo.ListGroupExpenses(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group expenses: %w", err)
	}
	payments, err := e.repo.ListGroupPayments(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group payments: %w", err)
	}

	// The plan's currency is the first enumerated member's preference. No
	// conversion happens; mixed-currency groups get a single label.
	currency := DefaultCurrency
	if len(members) > 0 && members[0].PreferredCurrency != "" {
		currency = members[0].PreferredCurrency
	}

	scalars, names := singleAxisNetBalances(members, expenses, payments)
	return simplify(scalars, names, currency), nil
}

// ensureMember verifies the user belongs to the group before any other
// group-scoped computation runs.
func (e *Engine) ensureMember(ctx context.Context, groupID, userID string) error {
	membership, err := e.repo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if membership == nil {
		return ErrAccessDenied
	}
	return nil
}

func (e *Engine) resolveUserCurrency(ctx context.Context, userID string) (string, error) {
	currency, err := e.repo.PreferredCurrency(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve currency: %w", err)
	}
	if currency == "" {
		return DefaultCurrency, nil
	}
	return currency, nil
}
