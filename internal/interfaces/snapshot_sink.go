package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// SnapshotSink consumes the final account snapshot of a replay run.
type SnapshotSink interface {
	WriteSnapshot(ctx context.Context, runID string, accounts []models.AccountSnapshot) error
}
