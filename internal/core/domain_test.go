package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validAccount() Account {
	return Account{
		ID:           "acc-1",
		Name:         "Visa",
		Type:         CreditCard,
		BankName:     DefaultBankName,
		Currency:     Currency,
		StartingDebt: 100,
		CreatedAt:    time.Now(),
		Notes:        DefaultNotes,
	}
}

func TestAccountValidate(t *testing.T) {
	if err := validAccount().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Account)
		wantErr error
	}{
		{"empty name", func(a *Account) { a.Name = "" }, ErrEmptyName},
		{"whitespace name", func(a *Account) { a.Name = "   " }, ErrEmptyName},
		{"unknown type", func(a *Account) { a.Type = "SAVINGS" }, ErrInvalidType},
		{"negative starting debt", func(a *Account) { a.StartingDebt = -1 }, ErrNegativeDebt},
		{"NaN starting debt", func(a *Account) { a.StartingDebt = math.NaN() }, ErrNegativeDebt},
	}
	for _, tc := range cases {
		a := validAccount()
		tc.mutate(&a)
		if err := a.Validate(); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	zero := validAccount()
	zero.StartingDebt = 0
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero starting debt should be valid, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:        "tx-1",
		AccountID: "acc-1",
		Date:      time.Now(),
		Amount:    25.50,
		Direction: Negative,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"no account", func(tx *Transaction) { tx.AccountID = "" }, ErrNoAccount},
		{"zero amount", func(tx *Transaction) { tx.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = -10 }, ErrInvalidAmount},
		{"NaN amount", func(tx *Transaction) { tx.Amount = math.NaN() }, ErrInvalidAmount},
		{"infinite amount", func(tx *Transaction) { tx.Amount = math.Inf(1) }, ErrInvalidAmount},
		{"bad direction", func(tx *Transaction) { tx.Direction = "SIDEWAYS" }, ErrInvalidDirection},
	}
	for _, tc := range cases {
		tx := good
		tc.mutate(&tx)
		if err := tx.Validate(); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestAccountTypes(t *testing.T) {
	types := AccountTypes()
	if len(types) != 3 {
		t.Fatalf("expected 3 account types, got %d", len(types))
	}
	for _, at := range types {
		if !at.IsValid() {
			t.Fatalf("listed type %s should be valid", at)
		}
	}
	if AccountType("SAVINGS").IsValid() {
		t.Fatalf("unexpected valid type")
	}
	if Direction("").IsValid() {
		t.Fatalf("empty direction should be invalid")
	}
}
