package models

import "fmt"

// ErrorCode identifies why an event was dropped.
type ErrorCode string

const (
	ErrorDuplicateTransactionID        ErrorCode = "duplicate_transaction_id"
	ErrorUnknownTransactionReference   ErrorCode = "unknown_transaction_reference"
	ErrorWrongClientForTransaction     ErrorCode = "wrong_client_for_transaction"
	ErrorInvalidTransactionKindDispute ErrorCode = "invalid_transaction_kind_for_dispute"
	ErrorInvalidStateTransition        ErrorCode = "invalid_state_transition"
	ErrorInsufficientFunds             ErrorCode = "insufficient_funds"
	ErrorAccountLocked                 ErrorCode = "account_locked"
	ErrorNegativeAmount                ErrorCode = "negative_amount"
	ErrorMalformedRecord               ErrorCode = "malformed_record"
)

// DomainError describes a single dropped event. It never signals a fatal condition.
type DomainError struct {
	Code    ErrorCode
	Type    EventType
	TxID    uint32
	Client  uint16
	Message string
}

func (e DomainError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s tx=%d client=%d)", e.Code, e.Message, e.Type, e.TxID, e.Client)
}

// Is matches any DomainError carrying the same code, so the sentinels below work with errors.Is.
func (e DomainError) Is(target error) bool {
	t, ok := target.(DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError builds a DomainError for evt.
func NewDomainError(code ErrorCode, evt Event, message string) error {
	return DomainError{Code: code, Type: evt.Type, TxID: evt.TxID, Client: evt.Client, Message: message}
}

var (
	ErrDuplicateTransactionID        = DomainError{Code: ErrorDuplicateTransactionID}
	ErrUnknownTransactionReference   = DomainError{Code: ErrorUnknownTransactionReference}
	ErrWrongClientForTransaction     = DomainError{Code: ErrorWrongClientForTransaction}
	ErrInvalidTransactionKindDispute = DomainError{Code: ErrorInvalidTransactionKindDispute}
	ErrInvalidStateTransition        = DomainError{Code: ErrorInvalidStateTransition}
	ErrInsufficientFunds             = DomainError{Code: ErrorInsufficientFunds}
	ErrAccountLocked                 = DomainError{Code: ErrorAccountLocked}
	ErrNegativeAmount                = DomainError{Code: ErrorNegativeAmount}
	ErrMalformedRecord               = DomainError{Code: ErrorMalformedRecord}
)
