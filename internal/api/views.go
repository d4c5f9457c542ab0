package api

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// View types shape the JSON responses. Models stay transport-agnostic;
// the conversion happens here.

type userView struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	DisplayName       string `json:"display_name"`
	PreferredCurrency string `json:"preferred_currency,omitempty"`
	CreatedAt         int64  `json:"created_at"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:                u.ID,
		Email:             u.Email,
		DisplayName:       u.DisplayName,
		PreferredCurrency: u.PreferredCurrency,
		CreatedAt:         u.CreatedAt,
	}
}

type memberView struct {
	UserID            string `json:"user_id"`
	DisplayName       string `json:"display_name"`
	PreferredCurrency string `json:"preferred_currency,omitempty"`
	JoinedAt          int64  `json:"joined_at"`
}

type groupView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedBy string       `json:"created_by"`
	CreatedAt int64        `json:"created_at"`
	Members   []memberView `json:"members,omitempty"`
}

func toGroupView(g *models.Group, members []models.Member) groupView {
	return groupView{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
		Members:   toMemberViews(members),
	}
}

func toMemberViews(members []models.Member) []memberView {
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, memberView{
			UserID:            m.UserID,
			DisplayName:       m.DisplayName,
			PreferredCurrency: m.PreferredCurrency,
			JoinedAt:          m.JoinedAt,
		})
	}
	return views
}

type splitView struct {
	UserID   string          `json:"user_id"`
	UserName string          `json:"user_name"`
	Amount   decimal.Decimal `json:"amount"`
}

type expenseView struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PayerID     string          `json:"payer_id"`
	PayerName   string          `json:"payer_name"`
	Splits      []splitView     `json:"splits"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   int64           `json:"created_at"`
}

func toExpenseView(e *models.Expense) expenseView {
	view := expenseView{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
	for _, s := range e.Splits {
		view.Splits = append(view.Splits, splitView{
			UserID:   s.UserID,
			UserName: s.UserName,
			Amount:   s.Amount,
		})
	}
	return view
}

type paymentView struct {
	ID           string               `json:"id"`
	GroupID      string               `json:"group_id,omitempty"`
	FromUserID   string               `json:"from_user_id"`
	FromUserName string               `json:"from_user_name"`
	ToUserID     string               `json:"to_user_id"`
	ToUserName   string               `json:"to_user_name"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency"`
	Status       models.PaymentStatus `json:"status"`
	Note         string               `json:"note,omitempty"`
	CreatedAt    int64                `json:"created_at"`
}

func toPaymentView(p *models.Payment) paymentView {
	return paymentView{
		ID:           p.ID,
		GroupID:      p.GroupID,
		FromUserID:   p.FromUserID,
		FromUserName: p.FromUserName,
		ToUserID:     p.ToUserID,
		ToUserName:   p.ToUserName,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Status:       p.Status,
		Note:         p.Note,
		CreatedAt:    p.CreatedAt,
	}
}
