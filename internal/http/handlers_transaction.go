package http

import (
	"errors"
	"log/slog"
	"net/http"

	"debtbook/internal/core"
	"debtbook/internal/services"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if accountID := r.URL.Query().Get("accountId"); accountID != "" {
			writeJSON(w, http.StatusOK, s.ledger.AccountTransactions(accountID))
			return
		}
		writeJSON(w, http.StatusOK, s.ledger.Transactions())
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	body, err := parseRequestBody(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := body.Amount("amount")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date, err := parseDate(body.String("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	transaction, err := s.ledger.AddTransaction(r.Context(), services.TransactionInput{
		AccountID:   body.String("accountId"),
		Date:        date,
		Amount:      amount,
		Direction:   core.Direction(body.String("direction")),
		Category:    body.String("category"),
		Description: body.String("description"),
	})
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			writeError(w, http.StatusUnprocessableEntity, "account not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, transaction)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/transactions/")
	if id == "" {
		writeError(w, http.StatusNotFound, "missing transaction id")
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "transaction_id", id)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
