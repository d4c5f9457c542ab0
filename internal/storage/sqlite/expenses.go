package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID any
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount_cents, currency, payer_id, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, groupID, expense.Description, int64(money.ToCents(expense.Amount)),
		expense.Currency, expense.PayerID, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount_cents) VALUES (?, ?, ?)",
			expense.ID, split.UserID, int64(money.ToCents(split.Amount)),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with splits and display names resolved.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expenses, err := s.queryExpenses(ctx,
		expenseQuery+" WHERE e.id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return &expenses[0], nil
}

// ListUserExpenses returns every expense involving the user, as payer or
// split participant, across all groups.
func (s *SQLiteStore) ListUserExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.queryExpenses(ctx,
		expenseQuery+` WHERE e.payer_id = ?
		 OR EXISTS (SELECT 1 FROM expense_splits es WHERE es.expense_id = e.id AND es.user_id = ?)
		 ORDER BY e.created_at, e.id`,
		userID, userID)
}

// ListGroupExpenses returns every expense recorded in the group.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	return s.queryExpenses(ctx,
		expenseQuery+" WHERE e.group_id = ? ORDER BY e.created_at, e.id", groupID)
}

const expenseQuery = `
	SELECT e.id, e.group_id, e.description, e.amount_cents, e.currency,
	       e.payer_id, u.display_name, e.created_by, e.created_at
	FROM expenses e
	JOIN users u ON u.id = e.payer_id`

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var groupID sql.NullString
		var cents int64
		if err := rows.Scan(&e.ID, &groupID, &e.Description, &cents, &e.Currency,
			&e.PayerID, &e.PayerName, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if groupID.Valid {
			e.GroupID = groupID.String
		}
		e.Amount = money.Cents(cents).Decimal()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		splits, err := s.listSplits(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Splits = splits
	}
	return expenses, nil
}

func (s *SQLiteStore) listSplits(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT es.user_id, u.display_name, es.amount_cents
		 FROM expense_splits es
		 JOIN users u ON u.id = es.user_id
		 WHERE es.expense_id = ?
		 ORDER BY es.user_id`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		var cents int64
		if err := rows.Scan(&split.UserID, &split.UserName, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = money.Cents(cents).Decimal()
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}
