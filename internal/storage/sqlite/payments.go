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

// CreatePayment persists a new payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}

	var groupID any
	if payment.GroupID != "" {
		groupID = payment.GroupID
	}
	var note any
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, from_user_id, to_user_id, amount_cents, currency, status, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, groupID, payment.FromUserID, payment.ToUserID,
		int64(money.ToCents(payment.Amount)), payment.Currency,
		string(payment.Status), note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment with display names resolved.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payments, err := s.queryPayments(ctx, paymentQuery+" WHERE p.id = ?", paymentID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return &payments[0], nil
}

// SetPaymentStatus transitions a payment to the given status.
func (s *SQLiteStore) SetPaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET status = ? WHERE id = ?",
		string(status), paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}

// ListUserPayments returns every payment involving the user as sender or
// receiver, regardless of status.
func (s *SQLiteStore) ListUserPayments(ctx context.Context, userID string) ([]models.Payment, error) {
	return s.queryPayments(ctx,
		paymentQuery+` WHERE p.from_user_id = ? OR p.to_user_id = ?
		 ORDER BY p.created_at, p.id`,
		userID, userID)
}

// ListGroupPayments returns every payment in the group, regardless of status.
func (s *SQLiteStore) ListGroupPayments(ctx context.Context, groupID string) ([]models.Payment, error) {
	return s.queryPayments(ctx,
		paymentQuery+" WHERE p.group_id = ? ORDER BY p.created_at, p.id", groupID)
}

const paymentQuery = `
	SELECT p.id, p.group_id, p.from_user_id, fu.display_name,
	       p.to_user_id, tu.display_name, p.amount_cents, p.currency,
	       p.status, p.note, p.created_at
	FROM payments p
	JOIN users fu ON fu.id = p.from_user_id
	JOIN users tu ON tu.id = p.to_user_id`

func (s *SQLiteStore) queryPayments(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var groupID, note sql.NullString
		var cents int64
		var status string
		if err := rows.Scan(&p.ID, &groupID, &p.FromUserID, &p.FromUserName,
			&p.ToUserID, &p.ToUserName, &cents, &p.Currency,
			&status, &note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if groupID.Valid {
			p.GroupID = groupID.String
		}
		if note.Valid {
			p.Note = note.String
		}
		p.Amount = money.Cents(cents).Decimal()
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
