package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account snapshots as CSV.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteSnapshot writes the header and one row per account, ordered by client id.
// The run id is not part of the CSV format.
func (w *Writer) WriteSnapshot(ctx context.Context, _ string, accounts []models.AccountSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([]models.AccountSnapshot, len(accounts))
	copy(rows, accounts)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Client < rows[j].Client })

	cw := csv.NewWriter(w.out)
	if err := cw.Write(snapshotHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, acc := range rows {
		record := []string{
			strconv.FormatUint(uint64(acc.Client), 10),
			acc.Available.String(),
			acc.Held.String(),
			acc.Total.String(),
			strconv.FormatBool(acc.Locked),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write client %d: %w", acc.Client, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

var _ interfaces.SnapshotSink = (*Writer)(nil)
