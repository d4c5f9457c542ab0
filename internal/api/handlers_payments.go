package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
)

type createPaymentRequest struct {
	GroupID  string          `json:"group_id,omitempty"`
	ToUserID string          `json:"to_user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	Note     string          `json:"note,omitempty"`
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req createPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ToUserID == "" {
		badRequest(w, "to_user_id is required")
		return
	}
	if req.ToUserID == userID {
		badRequest(w, "cannot pay yourself")
		return
	}
	if !req.Amount.IsPositive() {
		badRequest(w, "amount must be positive")
		return
	}
	if req.Currency == "" {
		req.Currency = engine.DefaultCurrency
	}
	if len(req.Currency) != 3 {
		badRequest(w, "currency must be a 3-letter code")
		return
	}

	receiver, err := s.store.GetUserByID(r.Context(), req.ToUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if receiver == nil {
		badRequest(w, "no such user")
		return
	}

	if req.GroupID != "" {
		membership, err := s.store.GetMembership(r.Context(), req.GroupID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if membership == nil {
			writeError(w, engine.ErrAccessDenied)
			return
		}
		receiverMembership, err := s.store.GetMembership(r.Context(), req.GroupID, req.ToUserID)
		if err != nil {
			writeError(w, err)
			return
		}
		if receiverMembership == nil {
			badRequest(w, "receiver is not a member of the group")
			return
		}
	}

	payment := &models.Payment{
		GroupID:    req.GroupID,
		FromUserID: userID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount.Round(2),
		Currency:   req.Currency,
		Status:     models.PaymentPending,
		Note:       req.Note,
	}
	if err := s.store.CreatePayment(r.Context(), payment); err != nil {
		writeError(w, err)
		return
	}

	created, err := s.store.GetPayment(r.Context(), payment.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentView(created))
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	payment, err := s.store.GetPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !s.mayViewPayment(r, payment, userID) {
		writeError(w, engine.ErrAccessDenied)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentView(payment))
}

// handleCompletePayment marks a pending payment COMPLETED, which makes it
// visible to the balance engine. Only the sender or receiver may confirm.
func (s *Server) handleCompletePayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	payment, err := s.store.GetPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if payment.FromUserID != userID && payment.ToUserID != userID {
		writeError(w, engine.ErrAccessDenied)
		return
	}
	if payment.Status != models.PaymentPending {
		badRequest(w, "only pending payments can be completed")
		return
	}

	if err := s.store.SetPaymentStatus(r.Context(), payment.ID, models.PaymentCompleted); err != nil {
		writeError(w, err)
		return
	}

	payment.Status = models.PaymentCompleted
	writeJSON(w, http.StatusOK, toPaymentView(payment))
}

// mayViewPayment allows the sender, the receiver, and (for group payments)
// any group member.
func (s *Server) mayViewPayment(r *http.Request, payment *models.Payment, userID string) bool {
	if payment.FromUserID == userID || payment.ToUserID == userID {
		return true
	}
	if payment.GroupID != "" {
		membership, err := s.store.GetMembership(r.Context(), payment.GroupID, userID)
		if err == nil && membership != nil {
			return true
		}
	}
	return false
}
