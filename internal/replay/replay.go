package replay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
	"go.uber.org/zap"
)

// Source yields events in input order. Next returns io.EOF at the end of the stream and a
// models.DomainError for a record that could not be decoded; any other error aborts the run.
type Source interface {
	Next() (models.Event, error)
	Line() int
}

// Stats summarises one run.
type Stats struct {
	Applied   int
	Malformed int
	Dropped   map[models.ErrorCode]int
}

// DroppedTotal counts every event that did not change the ledger, malformed rows included.
func (s Stats) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

// Engine replays a stream of events through a Ledger and exports the final snapshot.
type Engine struct {
	ledger *ledger.Ledger
	logger *zap.Logger
	runID  string
}

func NewEngine(l *ledger.Ledger, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	return &Engine{
		ledger: l,
		logger: logger.With(zap.String("run_id", runID)),
		runID:  runID,
	}
}

// RunID identifies this engine's exports.
func (e *Engine) RunID() string {
	return e.runID
}

// Run applies every event from src in order. Dropped events are logged and counted; they never
// stop the run. Cancellation is checked between events.
func (e *Engine) Run(ctx context.Context, src Source) (Stats, error) {
	stats := Stats{Dropped: make(map[models.ErrorCode]int)}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		evt, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var de models.DomainError
			if !errors.As(err, &de) {
				return stats, fmt.Errorf("read event: %w", err)
			}
			stats.Malformed++
			e.drop(src.Line(), evt, de)
			stats.Dropped[de.Code]++
			continue
		}

		if err := e.ledger.Apply(evt); err != nil {
			var de models.DomainError
			if !errors.As(err, &de) {
				return stats, fmt.Errorf("apply line %d: %w", src.Line(), err)
			}
			e.drop(src.Line(), evt, de)
			stats.Dropped[de.Code]++
			continue
		}
		stats.Applied++
	}

	e.logger.Info("replay finished",
		zap.Int("applied", stats.Applied),
		zap.Int("dropped", stats.DroppedTotal()),
		zap.Int("malformed", stats.Malformed),
	)
	return stats, nil
}

func (e *Engine) drop(line int, evt models.Event, de models.DomainError) {
	e.logger.Debug("event dropped",
		zap.Int("line", line),
		zap.String("type", string(evt.Type)),
		zap.Uint32("tx", evt.TxID),
		zap.Uint16("client", evt.Client),
		zap.String("code", string(de.Code)),
		zap.String("reason", de.Message),
	)
}

// Export takes one snapshot of the ledger and hands it to every sink in order.
func (e *Engine) Export(ctx context.Context, sinks ...interfaces.SnapshotSink) error {
	accounts := e.ledger.Snapshot()
	for _, sink := range sinks {
		if err := sink.WriteSnapshot(ctx, e.runID, accounts); err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
	}
	e.logger.Info("snapshot exported", zap.Int("accounts", len(accounts)), zap.Int("sinks", len(sinks)))
	return nil
}
