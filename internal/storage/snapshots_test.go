package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/common"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()

	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func snapshotRecords() []model.AccountRecord {
	return []model.AccountRecord{
		{
			Document:        "20601234567",
			CompanyName:     "ACME S.A.",
			Campaign:        "FLUJO",
			Advisor:         "MARIA FERNANDEZ",
			Priority:        "13",
			Contactability:  "Contacto Directo",
			Operator:        "CLARO",
			TotalDebt:       model.AmountFromFloat(1234.50),
			RecPlanillas:    model.AmountFromFloat(0),
			PlanillasPaidAt: time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			Document:    "20609876543",
			CompanyName: "BETA SAC",
			Campaign:    "PRESUNTA",
			Priority:    "07",
			// All amounts and dates absent.
		},
	}
}

func TestSaveAndLatestSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	loadedAt := time.Date(2025, time.November, 10, 9, 0, 0, 0, time.UTC)

	loadID, err := store.SaveSnapshot(ctx, "data.xlsx", loadedAt, snapshotRecords())
	require.NoError(t, err)
	assert.Positive(t, loadID)

	info, records, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, loadID, info.ID)
	assert.Equal(t, "data.xlsx", info.Source)
	assert.Equal(t, 2, info.RecordCount)
	require.Len(t, records, 2)

	acme := records[0]
	assert.Equal(t, "20601234567", acme.Document)
	require.True(t, acme.TotalDebt.Valid)
	assert.InDelta(t, 1234.50, acme.TotalDebt.Float64(), 0.001)
	assert.Equal(t, time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC), acme.PlanillasPaidAt)

	// Recorded zero survives the round trip as a recorded zero.
	assert.True(t, acme.RecPlanillas.Valid)
	assert.False(t, acme.RecPlanillas.Positive())

	// Absent values come back absent, not zero.
	beta := records[1]
	assert.False(t, beta.TotalDebt.Valid)
	assert.False(t, beta.RecPlanillas.Valid)
	assert.True(t, beta.PlanillasPaidAt.IsZero())
	assert.True(t, beta.LastActionAt.IsZero())
}

func TestLatestSnapshotPicksNewest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveSnapshot(ctx, "old.xlsx", time.Now(), snapshotRecords())
	require.NoError(t, err)
	newest, err := store.SaveSnapshot(ctx, "new.xlsx", time.Now(), snapshotRecords()[:1])
	require.NoError(t, err)

	info, records, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, newest, info.ID)
	assert.Equal(t, "new.xlsx", info.Source)
	assert.Len(t, records, 1)
}

func TestLatestSnapshotEmpty(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.LatestSnapshot(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveSnapshotRejectsEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveSnapshot(context.Background(), "empty.xlsx", time.Now(), nil)
	assert.ErrorIs(t, err, common.ErrNoRecords)
}

func TestListSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveSnapshot(ctx, "first.xlsx", time.Now(), snapshotRecords())
	require.NoError(t, err)
	_, err = store.SaveSnapshot(ctx, "second.xlsx", time.Now(), snapshotRecords())
	require.NoError(t, err)

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "second.xlsx", infos[0].Source)
	assert.Equal(t, "first.xlsx", infos[1].Source)
}
