package interfaces

import "github.com/sheikh-saqib/payments-ledger-replay/internal/models"

// TransactionLog is the append-only record of accepted deposits and withdrawals, keyed by a
// transaction id that is unique across all clients.
type TransactionLog interface {
	// Record stores tx in its initial state. A second record with the same id fails with
	// models.ErrDuplicateTransactionID and leaves the first untouched.
	Record(tx models.Transaction) error
	// Lookup returns a copy of the transaction with the given id.
	Lookup(id uint32) (models.Transaction, bool)
	// SetState moves an existing transaction to a new dispute state.
	SetState(id uint32, state models.TransactionState) error
}
