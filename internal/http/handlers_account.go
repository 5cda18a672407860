package http

import (
	"errors"
	"log/slog"
	"net/http"

	"debtbook/internal/core"
	"debtbook/internal/services"
)

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.Accounts())
	case http.MethodPost:
		s.createAccount(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	body, err := parseRequestBody(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	startingDebt, err := body.StartingDebt("startingDebt")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	account, err := s.ledger.AddAccount(r.Context(), services.AccountInput{
		Name:         body.String("name"),
		Type:         core.AccountType(body.String("type")),
		BankName:     body.String("bankName"),
		StartingDebt: startingDebt,
		Notes:        body.String("notes"),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/accounts/")
	if id == "" {
		writeError(w, http.StatusNotFound, "missing account id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getAccount(w, r, id)
	case http.MethodDelete:
		s.deleteAccount(w, r, id)
	default:
		methodNotAllowed(w, "GET, DELETE")
	}
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request, id string) {
	balance, err := s.ledger.Balance(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	for _, account := range s.ledger.Accounts() {
		if account.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{
				"account":      account,
				"balance":      balance,
				"transactions": s.ledger.AccountTransactions(id),
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "account not found")
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.ledger.DeleteAccount(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete account", "error", err, "account_id", id)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
