package events

import (
	"time"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// AccountSnapshotted is published once per account when a replay run is exported.
type AccountSnapshotted struct {
	RunID      string        `json:"run_id"`
	Client     uint16        `json:"client"`
	Available  models.Amount `json:"available"`
	Held       models.Amount `json:"held"`
	Total      models.Amount `json:"total"`
	Locked     bool          `json:"locked"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewAccountSnapshotted copies an account snapshot into its wire form.
func NewAccountSnapshotted(runID string, acc models.AccountSnapshot, at time.Time) AccountSnapshotted {
	return AccountSnapshotted{
		RunID:      runID,
		Client:     acc.Client,
		Available:  acc.Available,
		Held:       acc.Held,
		Total:      acc.Total,
		Locked:     acc.Locked,
		OccurredAt: at.UTC(),
	}
}
