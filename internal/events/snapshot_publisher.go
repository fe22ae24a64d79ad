package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models/events"
)

// SnapshotPublisher turns a run's snapshot into one AccountSnapshotted event per account,
// keyed by client id.
type SnapshotPublisher struct {
	publisher interfaces.EventPublisher
	now       func() time.Time
}

func NewSnapshotPublisher(publisher interfaces.EventPublisher) *SnapshotPublisher {
	return &SnapshotPublisher{publisher: publisher, now: time.Now}
}

func (s *SnapshotPublisher) WriteSnapshot(ctx context.Context, runID string, accounts []models.AccountSnapshot) error {
	at := s.now()
	for _, acc := range accounts {
		key := strconv.FormatUint(uint64(acc.Client), 10)
		if err := s.publisher.Publish(ctx, key, events.NewAccountSnapshotted(runID, acc, at)); err != nil {
			return fmt.Errorf("publish client %d: %w", acc.Client, err)
		}
	}
	return nil
}

var _ interfaces.SnapshotSink = (*SnapshotPublisher)(nil)
