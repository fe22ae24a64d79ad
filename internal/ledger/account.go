package ledger

import (
	"fmt"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// Account is the mutable balance state of one client. Only the Ledger changes it.
type Account struct {
	client    uint16
	available models.Amount
	held      models.Amount
	locked    bool
}

func newAccount(client uint16) *Account {
	return &Account{client: client}
}

// Total is always derived, never stored.
func (a *Account) Total() models.Amount {
	return a.available.Add(a.held)
}

func (a *Account) Locked() bool {
	return a.locked
}

func (a *Account) creditAvailable(amt models.Amount) {
	a.available = a.available.Add(amt)
}

func (a *Account) debitAvailable(amt models.Amount) error {
	if a.locked {
		return models.DomainError{
			Code:    models.ErrorAccountLocked,
			Client:  a.client,
			Message: "account is locked",
		}
	}
	if a.available.LessThan(amt) {
		return models.DomainError{
			Code:    models.ErrorInsufficientFunds,
			Client:  a.client,
			Message: fmt.Sprintf("available %s is less than %s", a.available, amt),
		}
	}

	a.available = a.available.Sub(amt)
	return nil
}

// hold does not check available: if the disputed money was already withdrawn,
// available goes negative and the liability stays visible.
func (a *Account) hold(amt models.Amount) {
	a.available = a.available.Sub(amt)
	a.held = a.held.Add(amt)
}

func (a *Account) release(amt models.Amount) {
	a.held = a.held.Sub(amt)
	a.available = a.available.Add(amt)
}

// chargeback removes held funds for good and freezes the account. There is no unlock.
func (a *Account) chargeback(amt models.Amount) {
	a.held = a.held.Sub(amt)
	a.locked = true
}

func (a *Account) snapshot() models.AccountSnapshot {
	return models.AccountSnapshot{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}
