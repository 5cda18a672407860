// Package services holds the mutation layer. The Ledger owns the account and
// transaction collections for the session, restores them from the
// persistence adapter at startup, and writes them through after every
// change.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"debtbook/internal/core"
	"debtbook/internal/store"
)

// Theme values persisted under the theme key.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Ledger is the single writer for the session. Entities are immutable once
// created: the only mutations are creation and deletion, and deleting an
// account cascades to its transactions.
type Ledger struct {
	mu           sync.Mutex
	adapter      *store.Adapter
	accounts     []core.Account
	transactions []core.Transaction
	theme        string
	now          func() time.Time
}

// NewLedger restores the collections from the adapter. When no account data
// has ever been stored it runs the one-time legacy import, folding old note
// texts into the notes of a freshly seeded starter account.
func NewLedger(ctx context.Context, adapter *store.Adapter) *Ledger {
	l := &Ledger{adapter: adapter, now: time.Now}

	// The import must be decided before the accounts key is first written:
	// any stored value under it, even an empty list, means no import.
	runImport := !adapter.Has(ctx, store.KeyAccounts)

	l.accounts = store.Load(ctx, adapter, store.KeyAccounts, []core.Account(nil))
	l.transactions = store.Load(ctx, adapter, store.KeyTransactions, []core.Transaction(nil))
	l.theme = store.Load(ctx, adapter, store.KeyTheme, ThemeLight)
	if l.theme != ThemeLight && l.theme != ThemeDark {
		l.theme = ThemeLight
	}

	if runImport {
		l.importLegacy(ctx)
	}

	return l
}

func (l *Ledger) importLegacy(ctx context.Context) {
	texts := l.adapter.ImportLegacyNotes(ctx)
	if len(texts) == 0 {
		return
	}
	seed := core.Account{
		ID:        uuid.NewString(),
		Name:      "Imported notes",
		Type:      core.CreditCard,
		BankName:  core.DefaultBankName,
		Currency:  core.Currency,
		CreatedAt: l.now(),
		Notes:     strings.Join(texts, "\n"),
	}
	l.accounts = []core.Account{seed}
	store.Save(ctx, l.adapter, store.KeyAccounts, l.accounts)
	slog.InfoContext(ctx, "Imported legacy notes into starter account",
		"account_id", seed.ID, "notes", len(texts))
}

// AccountInput carries the user-submitted fields for a new account.
type AccountInput struct {
	Name         string
	Type         core.AccountType
	BankName     string
	StartingDebt float64
	Notes        string
}

// TransactionInput carries the user-submitted fields for a new transaction.
// A zero Date means "now".
type TransactionInput struct {
	AccountID   string
	Date        time.Time
	Amount      float64
	Direction   core.Direction
	Category    string
	Description string
}

// AddAccount builds a new account from in, validates it, and prepends it to
// the collection (newest first).
func (l *Ledger) AddAccount(ctx context.Context, in AccountInput) (core.Account, error) {
	account := core.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Type:         in.Type,
		BankName:     orDefault(in.BankName, core.DefaultBankName),
		Currency:     core.Currency,
		StartingDebt: in.StartingDebt,
		CreatedAt:    l.now(),
		Notes:        orDefault(in.Notes, core.DefaultNotes),
	}
	if err := account.Validate(); err != nil {
		return core.Account{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts = append([]core.Account{account}, l.accounts...)
	store.Save(ctx, l.adapter, store.KeyAccounts, l.accounts)

	slog.InfoContext(ctx, "Account created",
		"account_id", account.ID, "name", account.Name, "type", account.Type)
	return account, nil
}

// AddTransaction builds a new transaction from in, validates it, checks that
// the target account exists, and prepends it to the collection.
func (l *Ledger) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	date := in.Date
	if date.IsZero() {
		date = l.now()
	}
	transaction := core.Transaction{
		ID:          uuid.NewString(),
		AccountID:   in.AccountID,
		Date:        date,
		Amount:      in.Amount,
		Direction:   in.Direction,
		Category:    orDefault(in.Category, core.DefaultCategory),
		Description: orDefault(in.Description, core.DefaultDescription),
	}
	if err := transaction.Validate(); err != nil {
		return core.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.findAccount(in.AccountID) < 0 {
		return core.Transaction{}, ErrAccountNotFound
	}
	l.transactions = append([]core.Transaction{transaction}, l.transactions...)
	store.Save(ctx, l.adapter, store.KeyTransactions, l.transactions)

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", transaction.ID,
		"account_id", transaction.AccountID,
		"amount", transaction.Amount,
		"direction", transaction.Direction)
	return transaction, nil
}

// DeleteAccount removes the account and every transaction recorded against
// it, as a single logical cascade: both collections are updated before the
// next read sees either.
func (l *Ledger) DeleteAccount(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.findAccount(id)
	if idx < 0 {
		return ErrAccountNotFound
	}
	l.accounts = append(l.accounts[:idx], l.accounts[idx+1:]...)

	kept := make([]core.Transaction, 0, len(l.transactions))
	cascaded := 0
	for _, t := range l.transactions {
		if t.AccountID == id {
			cascaded++
			continue
		}
		kept = append(kept, t)
	}
	l.transactions = kept

	store.Save(ctx, l.adapter, store.KeyAccounts, l.accounts)
	store.Save(ctx, l.adapter, store.KeyTransactions, l.transactions)

	slog.InfoContext(ctx, "Account deleted",
		"account_id", id, "cascaded_transactions", cascaded)
	return nil
}

// DeleteTransaction removes a single transaction by id.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, t := range l.transactions {
		if t.ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			store.Save(ctx, l.adapter, store.KeyTransactions, l.transactions)
			slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id)
			return nil
		}
	}
	return ErrTransactionNotFound
}

// Accounts returns a snapshot of the account collection, newest first.
func (l *Ledger) Accounts() []core.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Account(nil), l.accounts...)
}

// Transactions returns a snapshot of the transaction collection, newest
// first.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.transactions...)
}

// AccountTransactions returns the transactions recorded against one account.
// Orphaned transactions of other (possibly deleted) accounts never appear.
func (l *Ledger) AccountTransactions(id string) []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Transaction, 0)
	for _, t := range l.transactions {
		if t.AccountID == id {
			out = append(out, t)
		}
	}
	return out
}

// Balance returns the current balance of the account with the given id.
func (l *Ledger) Balance(id string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.findAccount(id)
	if idx < 0 {
		return 0, ErrAccountNotFound
	}
	return core.Balance(l.accounts[idx], l.transactions), nil
}

// Summary recomputes every aggregate from the current collections.
func (l *Ledger) Summary() core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.BuildSummary(l.accounts, l.transactions, l.now())
}

// Theme returns the current theme flag.
func (l *Ledger) Theme() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.theme
}

// ToggleTheme flips between light and dark and persists the result.
func (l *Ledger) ToggleTheme(ctx context.Context) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == ThemeDark {
		l.theme = ThemeLight
	} else {
		l.theme = ThemeDark
	}
	store.Save(ctx, l.adapter, store.KeyTheme, l.theme)
	return l.theme
}

// findAccount returns the index of the account with the given id, or -1.
// Callers hold l.mu.
func (l *Ledger) findAccount(id string) int {
	for i, a := range l.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
