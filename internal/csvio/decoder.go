package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// Option configures a Decoder.
type Option func(*Decoder)

// WithTrimSpace accepts fields padded with leading or trailing whitespace.
// Without it such fields make the row malformed.
func WithTrimSpace(trim bool) Option {
	return func(d *Decoder) {
		d.trim = trim
	}
}

// Decoder reads events from CSV with a header row naming the type, client, tx and amount columns.
type Decoder struct {
	r    *csv.Reader
	trim bool
	line int

	width     int
	typeIdx   int
	clientIdx int
	txIdx     int
	amountIdx int // -1 when the header has no amount column
}

// NewDecoder reads the header row from r.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	d := &Decoder{r: cr, amountIdx: -1, typeIdx: -1, clientIdx: -1, txIdx: -1}
	for _, opt := range opts {
		opt(d)
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	d.line = 1
	d.width = len(header)

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnType:
			d.typeIdx = i
		case columnClient:
			d.clientIdx = i
		case columnTx:
			d.txIdx = i
		case columnAmount:
			d.amountIdx = i
		}
	}
	if d.typeIdx < 0 || d.clientIdx < 0 || d.txIdx < 0 {
		return nil, fmt.Errorf("read header: columns %q, %q and %q are required, got %v", columnType, columnClient, columnTx, header)
	}

	return d, nil
}

// Line is the 1-based input line of the record last returned by Next.
func (d *Decoder) Line() int {
	return d.line
}

// Next returns the next event. A malformed row yields a models.DomainError with code
// ErrorMalformedRecord and the stream stays usable. io.EOF marks the end of input; any
// other error is an I/O failure.
func (d *Decoder) Next() (models.Event, error) {
	record, err := d.r.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			d.line = parseErr.StartLine
			return models.Event{}, malformed(models.Event{}, fmt.Sprintf("line %d: %v", d.line, parseErr.Err))
		}
		if errors.Is(err, io.EOF) {
			return models.Event{}, io.EOF
		}
		return models.Event{}, fmt.Errorf("read record: %w", err)
	}
	d.line, _ = d.r.FieldPos(0)

	return d.decode(record)
}

func (d *Decoder) decode(record []string) (models.Event, error) {
	var evt models.Event

	if len(record) > d.width {
		return evt, malformed(evt, fmt.Sprintf("line %d: %d fields, header has %d", d.line, len(record), d.width))
	}

	field := func(idx int) (string, error) {
		if idx < 0 || idx >= len(record) {
			return "", nil
		}
		value := record[idx]
		if d.trim {
			return strings.TrimSpace(value), nil
		}
		if value != strings.TrimSpace(value) {
			return "", fmt.Errorf("line %d: field %d has surrounding whitespace", d.line, idx+1)
		}
		return value, nil
	}

	rawType, err := field(d.typeIdx)
	if err != nil {
		return evt, malformed(evt, err.Error())
	}
	rawClient, err := field(d.clientIdx)
	if err != nil {
		return evt, malformed(evt, err.Error())
	}
	rawTx, err := field(d.txIdx)
	if err != nil {
		return evt, malformed(evt, err.Error())
	}

	if evt.Type, err = models.ParseEventType(rawType); err != nil {
		return evt, malformed(evt, fmt.Sprintf("line %d: %v", d.line, err))
	}
	client, err := strconv.ParseUint(rawClient, 10, 16)
	if err != nil {
		return evt, malformed(evt, fmt.Sprintf("line %d: invalid client %q", d.line, rawClient))
	}
	evt.Client = uint16(client)
	tx, err := strconv.ParseUint(rawTx, 10, 32)
	if err != nil {
		return evt, malformed(evt, fmt.Sprintf("line %d: invalid tx %q", d.line, rawTx))
	}
	evt.TxID = uint32(tx)

	if !evt.Type.MovesMoney() {
		return evt, nil
	}

	rawAmount, err := field(d.amountIdx)
	if err != nil {
		return evt, malformed(evt, err.Error())
	}
	if rawAmount == "" {
		return evt, malformed(evt, fmt.Sprintf("line %d: amount is required for %s", d.line, evt.Type))
	}
	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		return evt, malformed(evt, fmt.Sprintf("line %d: %v", d.line, err))
	}
	evt.Amount = &amount

	return evt, nil
}

func malformed(evt models.Event, message string) error {
	return models.NewDomainError(models.ErrorMalformedRecord, evt, message)
}
