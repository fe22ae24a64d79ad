package memory

import (
	"fmt"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// MemoryTransactionLog is an in-memory implementation of interfaces.TransactionLog.
// All clients share one map, so id uniqueness is global. It is not safe for
// concurrent use; the ledger that owns it serializes all access.
type MemoryTransactionLog struct {
	transactions map[uint32]*models.Transaction
}

// NewMemoryTransactionLog creates an empty log.
func NewMemoryTransactionLog() *MemoryTransactionLog {
	return &MemoryTransactionLog{
		transactions: make(map[uint32]*models.Transaction),
	}
}

// Record inserts tx in state Normal, whatever state the caller passed.
func (m *MemoryTransactionLog) Record(tx models.Transaction) error {
	if _, exists := m.transactions[tx.ID]; exists {
		return models.DomainError{
			Code:    models.ErrorDuplicateTransactionID,
			TxID:    tx.ID,
			Client:  tx.Client,
			Message: fmt.Sprintf("transaction %d already recorded", tx.ID),
		}
	}

	tx.State = models.StateNormal
	m.transactions[tx.ID] = &tx
	return nil
}

func (m *MemoryTransactionLog) Lookup(id uint32) (models.Transaction, bool) {
	tx, exists := m.transactions[id]
	if !exists {
		return models.Transaction{}, false
	}
	return *tx, true
}

func (m *MemoryTransactionLog) SetState(id uint32, state models.TransactionState) error {
	tx, exists := m.transactions[id]
	if !exists {
		return models.DomainError{
			Code:    models.ErrorUnknownTransactionReference,
			TxID:    id,
			Message: fmt.Sprintf("transaction %d not found", id),
		}
	}

	tx.State = state
	return nil
}

// Len returns the number of recorded transactions.
func (m *MemoryTransactionLog) Len() int {
	return len(m.transactions)
}

// Compile-time check: ensure MemoryTransactionLog implements TransactionLog interface
var _ interfaces.TransactionLog = (*MemoryTransactionLog)(nil)
