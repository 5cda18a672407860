package core

// Balance returns the current debt balance of an account: its starting debt
// plus every charge and minus every payment recorded against it. The fold is
// commutative under addition, so transaction order never affects the result.
// Positive means outstanding debt; zero or below means the account is paid
// off or in credit. An account with no transactions keeps its starting debt.
func Balance(account Account, transactions []Transaction) float64 {
	balance := account.StartingDebt
	for _, t := range transactions {
		if t.AccountID != account.ID {
			continue
		}
		switch t.Direction {
		case Negative:
			balance += t.Amount
		case Positive:
			balance -= t.Amount
		}
	}
	return balance
}

// Outstanding clamps the balance at zero. An account in credit contributes
// nothing to aggregate debt, never a negative offset.
func Outstanding(account Account, transactions []Transaction) float64 {
	if b := Balance(account, transactions); b > 0 {
		return b
	}
	return 0
}
