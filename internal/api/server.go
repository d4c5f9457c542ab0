// Package api exposes the splitledger HTTP JSON API. Handlers follow a
// guard-then-work pattern: authentication middleware resolves the user,
// handlers validate input, and the balance engine or store does the rest.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/storage"
)

// Server holds the handler dependencies.
type Server struct {
	store  storage.Store
	engine *engine.Engine
	authn  auth.Authenticator
	jwt    *auth.JWTManager
}

// NewServer creates a Server with the given storage backend and auth setup.
func NewServer(store storage.Store, authn auth.Authenticator, jwt *auth.JWTManager) *Server {
	return &Server{
		store:  store,
		engine: engine.New(store),
		authn:  authn,
		jwt:    jwt,
	}
}

// Routes builds the ServeMux with all API endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(s.jwt, h)
	}

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.Handle("POST /api/groups", authed(s.handleCreateGroup))
	mux.Handle("GET /api/groups/{id}", authed(s.handleGetGroup))
	mux.Handle("POST /api/groups/{id}/members", authed(s.handleAddMember))

	mux.Handle("POST /api/expenses", authed(s.handleCreateExpense))
	mux.Handle("GET /api/expenses/{id}", authed(s.handleGetExpense))

	mux.Handle("POST /api/payments", authed(s.handleCreatePayment))
	mux.Handle("GET /api/payments/{id}", authed(s.handleGetPayment))
	mux.Handle("POST /api/payments/{id}/complete", authed(s.handleCompletePayment))

	mux.Handle("GET /api/balances", authed(s.handleUserBalances))
	mux.Handle("GET /api/groups/{id}/balances", authed(s.handleGroupBalances))
	mux.Handle("GET /api/groups/{id}/debts", authed(s.handleSimplifyDebts))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}
