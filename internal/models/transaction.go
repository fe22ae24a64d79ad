package models

// TransactionKind distinguishes the two money-movement transactions kept in the log.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// TransactionState is the dispute lifecycle of a logged transaction.
//
//	Normal -> Disputed
//	Disputed -> Resolved | ChargedBack
//	Resolved -> Disputed
//
// ChargedBack is terminal.
type TransactionState string

const (
	StateNormal      TransactionState = "normal"
	StateDisputed    TransactionState = "disputed"
	StateResolved    TransactionState = "resolved"
	StateChargedBack TransactionState = "charged_back"
)

// Transaction is an accepted deposit or withdrawal. Only State changes after it is recorded.
type Transaction struct {
	ID     uint32
	Client uint16
	Kind   TransactionKind
	Amount Amount
	State  TransactionState
}
