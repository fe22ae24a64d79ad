package models

import "fmt"

// EventType is the kind of an input event.
type EventType string

const (
	EventDeposit    EventType = "deposit"
	EventWithdrawal EventType = "withdrawal"
	EventDispute    EventType = "dispute"
	EventResolve    EventType = "resolve"
	EventChargeback EventType = "chargeback"
)

// ParseEventType maps the wire name of an event type. Matching is exact.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case EventDeposit, EventWithdrawal, EventDispute, EventResolve, EventChargeback:
		return t, nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// MovesMoney reports whether the event type creates a new transaction.
func (t EventType) MovesMoney() bool {
	return t == EventDeposit || t == EventWithdrawal
}

// Event is one input record. Amount is only meaningful for deposits and withdrawals.
type Event struct {
	Type   EventType `json:"type"`
	Client uint16    `json:"client"`
	TxID   uint32    `json:"tx"`
	Amount *Amount   `json:"amount,omitempty"`
}

// Validate checks the event shape before it reaches any account.
func (e Event) Validate() error {
	if _, err := ParseEventType(string(e.Type)); err != nil {
		return NewDomainError(ErrorMalformedRecord, e, err.Error())
	}
	if !e.Type.MovesMoney() {
		return nil
	}
	if e.Amount == nil {
		return NewDomainError(ErrorMalformedRecord, e, "amount is required")
	}
	if e.Amount.IsNegative() {
		return NewDomainError(ErrorNegativeAmount, e, "amount must not be negative")
	}
	return nil
}
