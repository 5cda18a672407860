package core

import "time"

// RecentWindow is the trailing calendar window used for recent-activity
// signals. It ends at evaluation time, so the same stored data yields a
// different "recent" set depending on when it is viewed.
const RecentWindow = 30 * 24 * time.Hour

// Summary bundles every aggregate the presentation layer reads. It is
// recomputed from scratch on every evaluation; nothing here is cached or
// persisted.
type Summary struct {
	TotalDebt            float64                 `json:"totalDebt"`
	DebtByType           map[AccountType]float64 `json:"debtByType"`
	RecentPayments       float64                 `json:"recentPayments"`
	RecentCharges        float64                 `json:"recentCharges"`
	HighestDebt          *Account                `json:"highestDebt,omitempty"`
	LackingRecentPayment []Account               `json:"lackingRecentPayment"`
}

// TotalDebt sums the outstanding balance of every account. Accounts in
// credit clamp to zero, so the total is never negative.
func TotalDebt(accounts []Account, transactions []Transaction) float64 {
	total := 0.0
	for _, a := range accounts {
		total += Outstanding(a, transactions)
	}
	return total
}

// DebtByType maps each account type to its summed outstanding balance.
// Types with no accounts report zero.
func DebtByType(accounts []Account, transactions []Transaction) map[AccountType]float64 {
	byType := make(map[AccountType]float64, 3)
	for _, t := range AccountTypes() {
		byType[t] = 0
	}
	for _, a := range accounts {
		byType[a.Type] += Outstanding(a, transactions)
	}
	return byType
}

// RecentTotals sums transaction amounts inside the trailing window ending at
// now, partitioned by direction. Transactions dated in the future are not
// recent.
func RecentTotals(transactions []Transaction, now time.Time) (payments, charges float64) {
	from := now.Add(-RecentWindow)
	for _, t := range transactions {
		if t.Date.Before(from) || t.Date.After(now) {
			continue
		}
		switch t.Direction {
		case Positive:
			payments += t.Amount
		case Negative:
			charges += t.Amount
		}
	}
	return payments, charges
}

// HighestDebtAccount returns the account with the greatest outstanding
// balance, or nil when there are no accounts. Ties keep the account
// encountered first in collection order.
func HighestDebtAccount(accounts []Account, transactions []Transaction) *Account {
	var best *Account
	bestBalance := 0.0
	for _, a := range accounts {
		balance := Outstanding(a, transactions)
		if best == nil || balance > bestBalance {
			account := a
			best = &account
			bestBalance = balance
		}
	}
	return best
}

// AccountsLackingRecentPayment returns, in collection order, every account
// with no payment inside the trailing window ending at now. An account that
// has never seen a transaction is included.
func AccountsLackingRecentPayment(accounts []Account, transactions []Transaction, now time.Time) []Account {
	from := now.Add(-RecentWindow)
	paid := make(map[string]bool)
	for _, t := range transactions {
		if t.Direction != Positive {
			continue
		}
		if t.Date.Before(from) || t.Date.After(now) {
			continue
		}
		paid[t.AccountID] = true
	}
	lacking := make([]Account, 0)
	for _, a := range accounts {
		if !paid[a.ID] {
			lacking = append(lacking, a)
		}
	}
	return lacking
}

// BuildSummary computes every aggregate over the full collections.
func BuildSummary(accounts []Account, transactions []Transaction, now time.Time) Summary {
	payments, charges := RecentTotals(transactions, now)
	return Summary{
		TotalDebt:            TotalDebt(accounts, transactions),
		DebtByType:           DebtByType(accounts, transactions),
		RecentPayments:       payments,
		RecentCharges:        charges,
		HighestDebt:          HighestDebtAccount(accounts, transactions),
		LackingRecentPayment: AccountsLackingRecentPayment(accounts, transactions, now),
	}
}
