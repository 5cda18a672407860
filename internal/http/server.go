// Package http exposes the ledger to the presentation layer as a JSON API:
// read-only access to the collections and aggregates, the four mutation
// entry points, and the theme flag with its toggle.
package http

import (
	"net/http"

	"debtbook/internal/middleware/trace"
	"debtbook/internal/services"
)

// Server holds the handler dependencies.
type Server struct {
	ledger *services.Ledger
}

// NewServer wires the routes and returns a configured *http.Server. Timeouts
// are left for the caller to set.
func NewServer(addr string, ledger *services.Ledger) *http.Server {
	s := &Server{ledger: ledger}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleHealth)
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/", s.handleAccountByID)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/theme", s.handleTheme)
	mux.HandleFunc("/api/theme/toggle", s.handleThemeToggle)

	traced := trace.NewMiddleware()

	return &http.Server{
		Addr:    addr,
		Handler: traced.Middleware(mux),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
