package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// SnapshotStore exports account snapshots to a SQL table, one row per (run, client).
// Rows are written for inspection and reporting; nothing reads them back into a ledger.
type SnapshotStore struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewSnapshotStore(db *sql.DB, dialect Dialect) *SnapshotStore {
	return &SnapshotStore{
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
}

// Migrate creates the snapshot table when it does not exist yet.
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("migrate %s: %w", s.dialect.Name, err)
	}
	return nil
}

// WriteSnapshot upserts every account of the run inside one SQL transaction.
func (s *SnapshotStore) WriteSnapshot(ctx context.Context, runID string, accounts []models.AccountSnapshot) (err error) {
	p := s.dialect.placeholder
	query := fmt.Sprintf(`INSERT INTO account_snapshots (run_id, client, available, held, total, locked, created_at)
	VALUES (%s, %s, %s, %s, %s, %s, %s)
	ON CONFLICT (run_id, client) DO UPDATE SET
		available = excluded.available,
		held = excluded.held,
		total = excluded.total,
		locked = excluded.locked,
		created_at = excluded.created_at`,
		p(1), p(2), p(3), p(4), p(5), p(6), p(7))

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	stmt, err := dbTx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC()
	for _, acc := range accounts {
		_, err = stmt.ExecContext(ctx, runID, int64(acc.Client), acc.Available, acc.Held, acc.Total, acc.Locked, createdAt)
		if err != nil {
			return fmt.Errorf("insert client %d: %w", acc.Client, err)
		}
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// ListSnapshot returns the accounts exported for runID, ordered by client.
func (s *SnapshotStore) ListSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	query := fmt.Sprintf(`SELECT client, available, held, total, locked FROM account_snapshots
	WHERE run_id = %s ORDER BY client`, s.dialect.placeholder(1))

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	defer rows.Close()

	var accounts []models.AccountSnapshot
	for rows.Next() {
		var (
			acc    models.AccountSnapshot
			client int64
		)
		if err := rows.Scan(&client, &acc.Available, &acc.Held, &acc.Total, &acc.Locked); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		acc.Client = uint16(client)
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

var _ interfaces.SnapshotSink = (*SnapshotStore)(nil)
