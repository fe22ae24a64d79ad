package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	db, err := Open(SQLite, filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSnapshotStore(db, SQLite)
	store.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func snapshot(client uint16, available, held string, locked bool) models.AccountSnapshot {
	a := models.MustParseAmount(available)
	h := models.MustParseAmount(held)
	return models.AccountSnapshot{Client: client, Available: a, Held: h, Total: a.Add(h), Locked: locked}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	accounts := []models.AccountSnapshot{
		snapshot(7, "-2.5", "10", true),
		snapshot(1, "0.0001", "0", false),
	}
	require.NoError(t, store.WriteSnapshot(ctx, "run-a", accounts))
	require.NoError(t, store.WriteSnapshot(ctx, "run-b", accounts[:1]))

	got, err := store.ListSnapshot(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, uint16(1), got[0].Client)
	assert.Equal(t, "0.0001", got[0].Available.String())
	assert.Equal(t, "0.0000", got[0].Held.String())
	assert.False(t, got[0].Locked)

	assert.Equal(t, uint16(7), got[1].Client)
	assert.Equal(t, "-2.5000", got[1].Available.String())
	assert.Equal(t, "10.0000", got[1].Held.String())
	assert.Equal(t, "7.5000", got[1].Total.String())
	assert.True(t, got[1].Locked)

	other, err := store.ListSnapshot(ctx, "run-b")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSnapshotStoreUpsert(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteSnapshot(ctx, "run", []models.AccountSnapshot{snapshot(1, "1", "0", false)}))
	require.NoError(t, store.WriteSnapshot(ctx, "run", []models.AccountSnapshot{snapshot(1, "0", "0", true)}))

	got, err := store.ListSnapshot(ctx, "run")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0.0000", got[0].Total.String())
	assert.True(t, got[0].Locked)
}

func TestSnapshotStoreUnknownRun(t *testing.T) {
	store := openTestStore(t)
	got, err := store.ListSnapshot(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshotStoreCanceledWrite(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.WriteSnapshot(ctx, "run", []models.AccountSnapshot{snapshot(1, "1", "0", false)})
	assert.Error(t, err)

	got, err := store.ListSnapshot(context.Background(), "run")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$3", Postgres.placeholder(3))
	assert.Equal(t, "?", SQLite.placeholder(3))
	assert.Equal(t, "postgres", Postgres.DriverName)
	assert.Equal(t, "sqlite", SQLite.DriverName)
}
