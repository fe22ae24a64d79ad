package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits an Amount carries.
const AmountScale = 4

// Amount is a fixed-point monetary value. The zero value is 0.0000.
type Amount struct {
	value decimal.Decimal
}

// ZeroAmount is 0.0000.
var ZeroAmount = Amount{}

// ParseAmount parses a plain decimal string such as "1", "2.5" or "0.0001".
// Values with more than AmountScale fractional digits are rejected instead of rounded.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, fmt.Errorf("invalid amount: empty value")
	}
	if strings.ContainsAny(s, "eE") {
		return Amount{}, fmt.Errorf("invalid amount %q: exponent notation not allowed", s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Exponent() < -AmountScale && !d.Equal(d.Truncate(AmountScale)) {
		return Amount{}, fmt.Errorf("invalid amount %q: more than %d decimal places", s, AmountScale)
	}

	return Amount{value: d.Truncate(AmountScale)}, nil
}

// MustParseAmount is ParseAmount for literals known to be valid. It panics otherwise.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// NewAmountFromInt returns a whole-unit Amount.
func NewAmountFromInt(i int64) Amount {
	return Amount{value: decimal.NewFromInt(i)}
}

// Add returns a + other.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Sub returns a - other. The result may be negative.
func (a Amount) Sub(other Amount) Amount {
	return Amount{value: a.value.Sub(other.value)}
}

// Cmp returns -1, 0 or +1 depending on whether a is less than, equal to or greater than other.
func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(other.value)
}

func (a Amount) LessThan(other Amount) bool {
	return a.value.LessThan(other.value)
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Decimal exposes the underlying value for callers that need decimal math.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// String renders the amount with exactly AmountScale fractional digits.
func (a Amount) String() string {
	return a.value.StringFixed(AmountScale)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both quoted strings and bare JSON numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer so amounts are stored as fixed-scale decimal text.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}
	*a = Amount{value: d.Truncate(AmountScale)}
	return nil
}
