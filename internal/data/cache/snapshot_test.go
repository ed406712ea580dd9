package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	fetchedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	saved := &Snapshot{
		FetchedAt: fetchedAt,
		Trips:     fixtures.Sequential(1, 3, 16000, "2024-05-01T08:00:00Z"),
	}
	require.NoError(t, store.Save(model.UnitMiles, saved))

	loaded, err := store.Load(model.UnitMiles)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, loaded.Version)
	assert.True(t, loaded.FetchedAt.Equal(fetchedAt))
	require.Len(t, loaded.Trips, 3)
	assert.Equal(t, int64(3), loaded.Trips[2].ID)
}

func TestStoreUnitsAreIndependent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(model.UnitMiles, &Snapshot{
		FetchedAt: time.Now(),
		Trips:     fixtures.Sequential(1, 2, 16000, "2024-05-01T08:00:00Z"),
	}))

	_, err := store.Load(model.UnitKilometers)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(model.UnitMiles)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "trips_miles.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err = store.Load(model.UnitMiles)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoadVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "trips_miles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"trips":[]}`), 0644))

	_, err = store.Load(model.UnitMiles)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(model.UnitMiles, &Snapshot{
		FetchedAt: time.Now(),
		Trips:     fixtures.Sequential(1, 5, 16000, "2024-05-01T08:00:00Z"),
	}))
	require.NoError(t, store.Save(model.UnitMiles, &Snapshot{
		FetchedAt: time.Now(),
		Trips:     fixtures.Sequential(1, 2, 16000, "2024-05-01T08:00:00Z"),
	}))

	loaded, err := store.Load(model.UnitMiles)
	require.NoError(t, err)
	assert.Len(t, loaded.Trips, 2)
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(model.UnitMiles, &Snapshot{
		FetchedAt: time.Now(),
		Trips:     fixtures.Sequential(1, 1, 16000, "2024-05-01T08:00:00Z"),
	}))
	require.NoError(t, store.Clear(model.UnitMiles))

	_, err := store.Load(model.UnitMiles)
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing an already-missing snapshot is fine.
	assert.NoError(t, store.Clear(model.UnitMiles))
}

func TestStoreInfo(t *testing.T) {
	store := newTestStore(t)

	exists, _, _ := store.Info(model.UnitMiles)
	assert.False(t, exists)

	fetchedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(model.UnitMiles, &Snapshot{
		FetchedAt: fetchedAt,
		Trips:     fixtures.Sequential(1, 4, 16000, "2024-05-01T08:00:00Z"),
	}))

	exists, at, count := store.Info(model.UnitMiles)
	assert.True(t, exists)
	assert.True(t, at.Equal(fetchedAt))
	assert.Equal(t, 4, count)
}
