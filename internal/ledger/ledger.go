package ledger

import (
	"fmt"
	"sort"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// Ledger is the main struct representing our ledger system.
// It owns the transaction log and every client account, and is the only way to change them.
// A Ledger is not safe for concurrent use: events must be applied one at a time, in input order.
type Ledger struct {
	log      interfaces.TransactionLog // every accepted deposit and withdrawal, keyed by tx id
	accounts map[uint16]*Account       // created lazily on the first event for a client
}

// NewLedger is a constructor function that creates a new Ledger instance.
// We pass in a transaction log implementation (MemoryTransactionLog, ...).
func NewLedger(log interfaces.TransactionLog) *Ledger {
	return &Ledger{
		log:      log,
		accounts: make(map[uint16]*Account),
	}
}

// Apply processes one event. A non-nil error is a models.DomainError explaining why the
// event was dropped; in that case no balance or transaction state has changed. Callers
// should log it and move on to the next event.
func (l *Ledger) Apply(evt models.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	acc := l.account(evt.Client)

	switch evt.Type {
	case models.EventDeposit:
		return l.deposit(acc, evt)
	case models.EventWithdrawal:
		return l.withdraw(acc, evt)
	case models.EventDispute:
		return l.dispute(acc, evt)
	case models.EventResolve:
		return l.resolve(acc, evt)
	case models.EventChargeback:
		return l.chargeback(acc, evt)
	}

	return models.NewDomainError(models.ErrorMalformedRecord, evt, "unsupported event type")
}

func (l *Ledger) account(client uint16) *Account {
	acc, exists := l.accounts[client]
	if !exists {
		acc = newAccount(client)
		l.accounts[client] = acc
	}
	return acc
}

func (l *Ledger) deposit(acc *Account, evt models.Event) error {
	if acc.locked {
		return models.NewDomainError(models.ErrorAccountLocked, evt, "account is locked")
	}

	// Recording first makes a duplicate id fail before any money moves.
	if err := l.log.Record(newTransaction(evt, models.KindDeposit)); err != nil {
		return withEvent(err, evt)
	}
	acc.creditAvailable(*evt.Amount)
	return nil
}

func (l *Ledger) withdraw(acc *Account, evt models.Event) error {
	if acc.locked {
		return models.NewDomainError(models.ErrorAccountLocked, evt, "account is locked")
	}
	if _, exists := l.log.Lookup(evt.TxID); exists {
		return models.NewDomainError(models.ErrorDuplicateTransactionID, evt, "transaction already recorded")
	}

	if err := acc.debitAvailable(*evt.Amount); err != nil {
		return withEvent(err, evt)
	}
	if err := l.log.Record(newTransaction(evt, models.KindWithdrawal)); err != nil {
		// The lookup above rules this out for a log that honours its contract.
		acc.creditAvailable(*evt.Amount)
		return withEvent(err, evt)
	}
	return nil
}

func (l *Ledger) dispute(acc *Account, evt models.Event) error {
	tx, err := l.disputeTarget(evt)
	if err != nil {
		return err
	}
	if tx.Kind != models.KindDeposit {
		return models.NewDomainError(models.ErrorInvalidTransactionKindDispute, evt, "only deposits can be disputed")
	}
	if tx.State != models.StateNormal && tx.State != models.StateResolved {
		return invalidTransition(evt, tx.State)
	}

	if err := l.log.SetState(tx.ID, models.StateDisputed); err != nil {
		return withEvent(err, evt)
	}
	acc.hold(tx.Amount)
	return nil
}

func (l *Ledger) resolve(acc *Account, evt models.Event) error {
	tx, err := l.disputeTarget(evt)
	if err != nil {
		return err
	}
	if tx.State != models.StateDisputed {
		return invalidTransition(evt, tx.State)
	}

	if err := l.log.SetState(tx.ID, models.StateResolved); err != nil {
		return withEvent(err, evt)
	}
	acc.release(tx.Amount)
	return nil
}

// chargeback is honoured on locked accounts too: locking stops new money movement,
// not the settlement of disputes that are already open.
func (l *Ledger) chargeback(acc *Account, evt models.Event) error {
	tx, err := l.disputeTarget(evt)
	if err != nil {
		return err
	}
	if tx.State != models.StateDisputed {
		return invalidTransition(evt, tx.State)
	}

	if err := l.log.SetState(tx.ID, models.StateChargedBack); err != nil {
		return withEvent(err, evt)
	}
	acc.chargeback(tx.Amount)
	return nil
}

// disputeTarget resolves the transaction a dispute, resolve or chargeback refers to.
func (l *Ledger) disputeTarget(evt models.Event) (models.Transaction, error) {
	tx, exists := l.log.Lookup(evt.TxID)
	if !exists {
		return models.Transaction{}, models.NewDomainError(models.ErrorUnknownTransactionReference, evt, "transaction not found")
	}
	if tx.Client != evt.Client {
		return models.Transaction{}, models.NewDomainError(
			models.ErrorWrongClientForTransaction,
			evt,
			fmt.Sprintf("transaction belongs to client %d", tx.Client),
		)
	}
	return tx, nil
}

// Snapshot returns one entry per known client, sorted by client id.
func (l *Ledger) Snapshot() []models.AccountSnapshot {
	out := make([]models.AccountSnapshot, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, acc.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

// Account returns the snapshot of a single client.
func (l *Ledger) Account(client uint16) (models.AccountSnapshot, bool) {
	acc, exists := l.accounts[client]
	if !exists {
		return models.AccountSnapshot{}, false
	}
	return acc.snapshot(), true
}

// Transaction returns the logged transaction with the given id.
func (l *Ledger) Transaction(id uint32) (models.Transaction, bool) {
	return l.log.Lookup(id)
}

func newTransaction(evt models.Event, kind models.TransactionKind) models.Transaction {
	return models.Transaction{
		ID:     evt.TxID,
		Client: evt.Client,
		Kind:   kind,
		Amount: *evt.Amount,
		State:  models.StateNormal,
	}
}

func invalidTransition(evt models.Event, from models.TransactionState) error {
	return models.NewDomainError(
		models.ErrorInvalidStateTransition,
		evt,
		fmt.Sprintf("cannot %s a transaction in state %s", evt.Type, from),
	)
}

// withEvent stamps a DomainError raised below the ledger with the event that caused it.
func withEvent(err error, evt models.Event) error {
	de, ok := err.(models.DomainError)
	if !ok {
		return fmt.Errorf("%s tx=%d: %w", evt.Type, evt.TxID, err)
	}
	de.Type, de.TxID, de.Client = evt.Type, evt.TxID, evt.Client
	return de
}
