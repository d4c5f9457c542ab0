// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrNotFound is wrapped by store methods when the requested record does
// not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for splitledger. It is a
// superset of engine.Repository, so any Store can back the balance engine
// directly. This abstraction allows swapping storage backends (SQLite,
// PostgreSQL) without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group and adds the creator as its first
	// member. The group.ID field is populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddMember adds a user to a group. Adding an existing member is a
	// no-op.
	AddMember(ctx context.Context, groupID, userID string) error

	// GetMembership returns the membership record for the pair, or
	// (nil, nil) when the user is not a member.
	GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error)

	// ListMembers enumerates a group's members with display names and
	// preferred currencies resolved, ordered by joined-at with ties broken
	// by insertion order (the creator always comes first).
	ListMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// CreateExpense persists an expense and its splits atomically. The
	// expense.ID field is populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with splits and names resolved.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListUserExpenses returns every expense involving the user, as payer
	// or split participant, across all groups.
	ListUserExpenses(ctx context.Context, userID string) ([]models.Expense, error)

	// ListGroupExpenses returns every expense recorded in the group.
	ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// CreatePayment persists a payment. The payment.ID field is populated
	// by the store.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment with names resolved.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// SetPaymentStatus transitions a payment to the given status.
	SetPaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error

	// ListUserPayments returns every payment involving the user as sender
	// or receiver, regardless of status.
	ListUserPayments(ctx context.Context, userID string) ([]models.Payment, error)

	// ListGroupPayments returns every payment in the group, regardless of
	// status.
	ListGroupPayments(ctx context.Context, groupID string) ([]models.Payment, error)

	// PreferredCurrency returns the user's preferred currency code, or ""
	// when unset.
	PreferredCurrency(ctx context.Context, userID string) (string, error)

	// Close releases any resources held by the store.
	Close() error
}
