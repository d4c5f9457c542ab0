package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/split"
)

type expenseParticipant struct {
	UserID     string           `json:"user_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

type createExpenseRequest struct {
	GroupID      string               `json:"group_id,omitempty"`
	Description  string               `json:"description"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency,omitempty"`
	PayerID      string               `json:"payer_id,omitempty"`
	SplitType    split.Type           `json:"split_type,omitempty"`
	Participants []expenseParticipant `json:"participants"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Description == "" {
		badRequest(w, "description is required")
		return
	}
	if req.PayerID == "" {
		req.PayerID = userID
	}
	if req.Currency == "" {
		req.Currency = engine.DefaultCurrency
	}
	if len(req.Currency) != 3 {
		badRequest(w, "currency must be a 3-letter code")
		return
	}
	if req.SplitType == "" {
		req.SplitType = split.TypeEqual
	}

	if err := s.checkExpenseParties(w, r, &req, userID); err != nil {
		return
	}

	inputs := make([]split.Input, 0, len(req.Participants))
	for _, p := range req.Participants {
		inputs = append(inputs, split.Input{
			UserID:     p.UserID,
			Amount:     p.Amount,
			Percentage: p.Percentage,
		})
	}
	shares, err := split.Calculate(req.SplitType, req.Amount, inputs)
	if err != nil {
		writeError(w, err)
		return
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		Description: req.Description,
		Amount:      req.Amount.Round(2),
		Currency:    req.Currency,
		PayerID:     req.PayerID,
		CreatedBy:   userID,
	}
	for _, share := range shares {
		expense.Splits = append(expense.Splits, models.ExpenseSplit{
			UserID: share.UserID,
			Amount: share.Amount,
		})
	}
	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		writeError(w, err)
		return
	}

	// Re-read so display names come back resolved.
	created, err := s.store.GetExpense(r.Context(), expense.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseView(created))
}

// checkExpenseParties verifies the requester may record the expense and
// that the payer and every participant exist (and, for group expenses,
// belong to the group). It writes the response on failure.
func (s *Server) checkExpenseParties(w http.ResponseWriter, r *http.Request, req *createExpenseRequest, userID string) error {
	ctx := r.Context()

	if req.GroupID != "" {
		membership, err := s.store.GetMembership(ctx, req.GroupID, userID)
		if err != nil {
			writeError(w, err)
			return err
		}
		if membership == nil {
			writeError(w, engine.ErrAccessDenied)
			return engine.ErrAccessDenied
		}

		for _, id := range expenseParties(req) {
			m, err := s.store.GetMembership(ctx, req.GroupID, id)
			if err != nil {
				writeError(w, err)
				return err
			}
			if m == nil {
				badRequest(w, "user "+id+" is not a member of the group")
				return engine.ErrAccessDenied
			}
		}
		return nil
	}

	for _, id := range expenseParties(req) {
		u, err := s.store.GetUserByID(ctx, id)
		if err != nil {
			writeError(w, err)
			return err
		}
		if u == nil {
			badRequest(w, "no such user: "+id)
			return engine.ErrAccessDenied
		}
	}
	return nil
}

// expenseParties returns the payer plus all participants, deduplicated.
func expenseParties(req *createExpenseRequest) []string {
	seen := map[string]bool{req.PayerID: true}
	ids := []string{req.PayerID}
	for _, p := range req.Participants {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	expense, err := s.store.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if !s.mayViewExpense(r, expense, userID) {
		writeError(w, engine.ErrAccessDenied)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseView(expense))
}

// mayViewExpense allows the payer, any split participant, the recorder,
// and (for group expenses) any group member.
func (s *Server) mayViewExpense(r *http.Request, expense *models.Expense, userID string) bool {
	if expense.PayerID == userID || expense.CreatedBy == userID {
		return true
	}
	for _, share := range expense.Splits {
		if share.UserID == userID {
			return true
		}
	}
	if expense.GroupID != "" {
		membership, err := s.store.GetMembership(r.Context(), expense.GroupID, userID)
		if err == nil && membership != nil {
			return true
		}
	}
	return false
}
