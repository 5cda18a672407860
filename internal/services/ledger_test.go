package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"debtbook/internal/core"
	"debtbook/internal/kv"
	"debtbook/internal/store"
)

var testNow = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*Ledger, *store.Adapter) {
	t.Helper()
	adapter := store.NewAdapter(kv.NewMemoryStore(), "")
	l := NewLedger(context.Background(), adapter)
	l.now = func() time.Time { return testNow }
	return l, adapter
}

func addAccount(t *testing.T, l *Ledger, name string, debt float64) core.Account {
	t.Helper()
	a, err := l.AddAccount(context.Background(), AccountInput{
		Name:         name,
		Type:         core.CreditCard,
		StartingDebt: debt,
	})
	if err != nil {
		t.Fatalf("add account %s: %v", name, err)
	}
	return a
}

func addTx(t *testing.T, l *Ledger, accountID string, amount float64, dir core.Direction) core.Transaction {
	t.Helper()
	tx, err := l.AddTransaction(context.Background(), TransactionInput{
		AccountID: accountID,
		Amount:    amount,
		Direction: dir,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestAddAccountDefaultsAndOrder(t *testing.T) {
	l, _ := newTestLedger(t)

	first := addAccount(t, l, "Visa", 100)
	if first.ID == "" {
		t.Fatalf("expected generated id")
	}
	if first.BankName != core.DefaultBankName || first.Notes != core.DefaultNotes {
		t.Fatalf("expected placeholder defaults, got %q / %q", first.BankName, first.Notes)
	}
	if first.Currency != core.Currency {
		t.Fatalf("expected fixed currency, got %q", first.Currency)
	}
	if !first.CreatedAt.Equal(testNow) {
		t.Fatalf("expected injected clock timestamp, got %v", first.CreatedAt)
	}

	second := addAccount(t, l, "Car loan", 0)
	accounts := l.Accounts()
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	// Newest first.
	if accounts[0].ID != second.ID || accounts[1].ID != first.ID {
		t.Fatalf("expected prepend order, got %s then %s", accounts[0].Name, accounts[1].Name)
	}
}

func TestAddAccountValidation(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.AddAccount(context.Background(), AccountInput{Name: "  ", Type: core.CreditCard})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	_, err = l.AddAccount(context.Background(), AccountInput{Name: "x", Type: "SAVINGS"})
	if !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	_, err = l.AddAccount(context.Background(), AccountInput{Name: "x", Type: core.Loan, StartingDebt: -1})
	if !errors.Is(err, core.ErrNegativeDebt) {
		t.Fatalf("expected ErrNegativeDebt, got %v", err)
	}
	if len(l.Accounts()) != 0 {
		t.Fatalf("failed validations must not mutate the collection")
	}
}

func TestAddTransaction(t *testing.T) {
	l, _ := newTestLedger(t)
	account := addAccount(t, l, "Visa", 100)

	tx := addTx(t, l, account.ID, 25, core.Negative)
	if tx.Category != core.DefaultCategory || tx.Description != core.DefaultDescription {
		t.Fatalf("expected placeholder defaults, got %q / %q", tx.Category, tx.Description)
	}
	if !tx.Date.Equal(testNow) {
		t.Fatalf("zero date should default to now, got %v", tx.Date)
	}

	second := addTx(t, l, account.ID, 10, core.Positive)
	txs := l.Transactions()
	if len(txs) != 2 || txs[0].ID != second.ID {
		t.Fatalf("expected prepend order")
	}

	balance, err := l.Balance(account.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 115 {
		t.Fatalf("expected 100+25-10=115, got %v", balance)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	account := addAccount(t, l, "Visa", 100)

	_, err := l.AddTransaction(context.Background(), TransactionInput{
		AccountID: "nope", Amount: 5, Direction: core.Negative,
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	// Strict amount policy: zero is rejected.
	_, err = l.AddTransaction(context.Background(), TransactionInput{
		AccountID: account.ID, Amount: 0, Direction: core.Negative,
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	_, err = l.AddTransaction(context.Background(), TransactionInput{
		AccountID: account.ID, Amount: 5, Direction: "SIDEWAYS",
	})
	if !errors.Is(err, core.ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}

	if len(l.Transactions()) != 0 {
		t.Fatalf("failed validations must not mutate the collection")
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	l, _ := newTestLedger(t)
	doomed := addAccount(t, l, "Doomed", 100)
	kept := addAccount(t, l, "Kept", 200)

	addTx(t, l, doomed.ID, 10, core.Negative)
	addTx(t, l, doomed.ID, 5, core.Positive)
	keptTx := addTx(t, l, kept.ID, 50, core.Negative)

	keptBalanceBefore, _ := l.Balance(kept.ID)

	if err := l.DeleteAccount(context.Background(), doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(l.Accounts()) != 1 || l.Accounts()[0].ID != kept.ID {
		t.Fatalf("expected only the kept account to remain")
	}
	txs := l.Transactions()
	if len(txs) != 1 || txs[0].ID != keptTx.ID {
		t.Fatalf("cascade removed the wrong transactions: %+v", txs)
	}

	keptBalanceAfter, _ := l.Balance(kept.ID)
	if keptBalanceBefore != keptBalanceAfter {
		t.Fatalf("other account's balance changed: %v vs %v", keptBalanceBefore, keptBalanceAfter)
	}

	if err := l.DeleteAccount(context.Background(), doomed.ID); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on double delete, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	l, _ := newTestLedger(t)
	account := addAccount(t, l, "Visa", 100)
	tx := addTx(t, l, account.ID, 25, core.Negative)

	if err := l.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(l.Transactions()) != 0 {
		t.Fatalf("expected empty collection")
	}
	if err := l.DeleteTransaction(context.Background(), tx.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestWriteThroughPersistence(t *testing.T) {
	l, adapter := newTestLedger(t)
	account := addAccount(t, l, "Visa", 100)
	addTx(t, l, account.ID, 25, core.Negative)
	l.ToggleTheme(context.Background())

	// A fresh ledger over the same adapter sees identical state.
	restored := NewLedger(context.Background(), adapter)
	if len(restored.Accounts()) != 1 || restored.Accounts()[0].ID != account.ID {
		t.Fatalf("accounts did not survive restart")
	}
	if len(restored.Transactions()) != 1 {
		t.Fatalf("transactions did not survive restart")
	}
	if restored.Theme() != ThemeDark {
		t.Fatalf("theme did not survive restart, got %q", restored.Theme())
	}
	balance, err := restored.Balance(account.ID)
	if err != nil || balance != 125 {
		t.Fatalf("restored balance = %v, %v; want 125", balance, err)
	}
}

func TestThemeToggle(t *testing.T) {
	l, _ := newTestLedger(t)
	if l.Theme() != ThemeLight {
		t.Fatalf("expected light default, got %q", l.Theme())
	}
	if got := l.ToggleTheme(context.Background()); got != ThemeDark {
		t.Fatalf("expected dark after toggle, got %q", got)
	}
	if got := l.ToggleTheme(context.Background()); got != ThemeLight {
		t.Fatalf("expected light after second toggle, got %q", got)
	}
}

func TestSummaryUsesInjectedClock(t *testing.T) {
	l, _ := newTestLedger(t)
	account := addAccount(t, l, "Visa", 100)

	// Old payment, outside the window.
	_, err := l.AddTransaction(context.Background(), TransactionInput{
		AccountID: account.ID,
		Date:      testNow.Add(-40 * 24 * time.Hour),
		Amount:    30,
		Direction: core.Positive,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	s := l.Summary()
	if s.RecentPayments != 0 {
		t.Fatalf("40-day-old payment should not be recent, got %v", s.RecentPayments)
	}
	if len(s.LackingRecentPayment) != 1 {
		t.Fatalf("expected the account to lack a recent payment")
	}
	if s.TotalDebt != 70 {
		t.Fatalf("expected 70 total debt, got %v", s.TotalDebt)
	}

	addTx(t, l, account.ID, 10, core.Positive) // dated testNow
	s = l.Summary()
	if s.RecentPayments != 10 || len(s.LackingRecentPayment) != 0 {
		t.Fatalf("payment today should register: %+v", s)
	}
}

func TestLegacyImportSeedsAccount(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	adapter := store.NewAdapter(mem, "")

	mustSeed(t, mem, store.DefaultPrefix+"todos", `[{"id":1,"text":"pay rent"}]`)
	mustSeed(t, mem, store.DefaultPrefix+"notes", `[{"id":"a","text":"call bank"}]`)

	l := NewLedger(ctx, adapter)
	accounts := l.Accounts()
	if len(accounts) != 1 {
		t.Fatalf("expected one seeded account, got %d", len(accounts))
	}
	seeded := accounts[0]
	if seeded.Notes != "pay rent\ncall bank" {
		t.Fatalf("unexpected seeded notes: %q", seeded.Notes)
	}
	if seeded.StartingDebt != 0 {
		t.Fatalf("seeded account should start debt-free")
	}

	// The import never re-triggers once the accounts key holds a value.
	again := NewLedger(ctx, adapter)
	if len(again.Accounts()) != 1 || again.Accounts()[0].ID != seeded.ID {
		t.Fatalf("import re-triggered on restart")
	}
}

func TestLegacyImportSkippedWhenAccountsStored(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	adapter := store.NewAdapter(mem, "")

	// Even an empty stored collection blocks the import.
	mustSeed(t, mem, store.DefaultPrefix+store.KeyAccounts, `[]`)
	mustSeed(t, mem, store.DefaultPrefix+"todos", `[{"id":1,"text":"pay rent"}]`)

	l := NewLedger(ctx, adapter)
	if len(l.Accounts()) != 0 {
		t.Fatalf("import must not run once the new-format key has a value")
	}
}

func mustSeed(t *testing.T, s *kv.MemoryStore, key, value string) {
	t.Helper()
	if err := s.Put(context.Background(), key, value); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}
