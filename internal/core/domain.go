package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Currency is the single currency code the ledger supports.
const Currency = "EUR"

// Defaults applied to optional fields left empty at creation.
const (
	DefaultBankName    = "Unknown bank"
	DefaultNotes       = "No notes"
	DefaultCategory    = "General"
	DefaultDescription = "No description"
)

const (
	CreditCard AccountType = "CREDIT_CARD"
	Loan       AccountType = "LOAN"
	Overdraft  AccountType = "OVERDRAFT"
)

const (
	// Negative marks a charge: it increases the account's debt.
	Negative Direction = "NEGATIVE"
	// Positive marks a payment: it reduces the account's debt.
	Positive Direction = "POSITIVE"
)

type (
	AccountType string
	Direction   string

	// Account is a debt-bearing entity. Immutable once created; the only
	// supported lifecycle operations are creation and deletion.
	Account struct {
		ID           string      `json:"id"`
		Name         string      `json:"name"`
		Type         AccountType `json:"type"`
		BankName     string      `json:"bankName"`
		Currency     string      `json:"currency"`
		StartingDebt float64     `json:"startingDebt"`
		CreatedAt    time.Time   `json:"createdAt"`
		Notes        string      `json:"notes"`
	}

	// Transaction is a dated amount applied against one account. The amount
	// is a magnitude; the sign is carried by Direction.
	Transaction struct {
		ID          string    `json:"id"`
		AccountID   string    `json:"accountId"`
		Date        time.Time `json:"date"`
		Amount      float64   `json:"amount"`
		Direction   Direction `json:"direction"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
	}
)

var (
	ErrEmptyName        = errors.New("empty account name")
	ErrInvalidType      = errors.New("invalid account type")
	ErrNegativeDebt     = errors.New("starting debt must be non-negative")
	ErrNoAccount        = errors.New("transaction has no account")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDirection = errors.New("invalid direction")
)

// AccountTypes lists every supported account type, in display order.
func AccountTypes() []AccountType {
	return []AccountType{CreditCard, Loan, Overdraft}
}

func (t AccountType) IsValid() bool {
	switch t {
	case CreditCard, Loan, Overdraft:
		return true
	default:
		return false
	}
}

func (d Direction) IsValid() bool {
	switch d {
	case Negative, Positive:
		return true
	default:
		return false
	}
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.IsValid() {
		return ErrInvalidType
	}
	if math.IsNaN(a.StartingDebt) || math.IsInf(a.StartingDebt, 0) || a.StartingDebt < 0 {
		return ErrNegativeDebt
	}
	return nil
}

// Validate enforces the strict amount policy: a transaction amount must be
// strictly positive. Existence of the referenced account is checked by the
// mutation layer, not here.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrNoAccount
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Direction.IsValid() {
		return ErrInvalidDirection
	}
	return nil
}
