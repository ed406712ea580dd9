// Package sync keeps the local trip snapshot consistent with the remote
// source while minimizing remote calls. Per invocation it decides between
// a full refetch, an incremental fetch, or no fetch at all.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/penwyp/go-eddington/internal/core/constants"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/data/cache"
	"github.com/penwyp/go-eddington/internal/util"
)

// Source is the remote trip listing the synchronizer consumes.
type Source interface {
	Latest(ctx context.Context) (*model.Trip, error)
	Page(ctx context.Context, page, perPage int) ([]model.Trip, error)
	All(ctx context.Context, progress func(done, total int)) ([]model.Trip, error)
}

// Store persists the per-unit snapshot.
type Store interface {
	Load(unit model.Unit) (*cache.Snapshot, error)
	Save(unit model.Unit, snap *cache.Snapshot) error
	Clear(unit model.Unit) error
}

// Synchronizer implements the sync state machine. It never mutates the
// persisted snapshot unless a merge fully succeeds, so the prior snapshot
// stays authoritative across failures.
type Synchronizer struct {
	source   Source
	store    Store
	maxAge   time.Duration
	pageSize int
	progress func(done, total int)
	now      func() time.Time
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithMaxAge sets the snapshot age beyond which a full refetch happens.
func WithMaxAge(d time.Duration) Option {
	return func(s *Synchronizer) { s.maxAge = d }
}

// WithPageSize sets the per-page record count for incremental fetches.
func WithPageSize(n int) Option {
	return func(s *Synchronizer) { s.pageSize = n }
}

// WithProgress installs a callback for full-fetch progress reporting.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Synchronizer) { s.progress = fn }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) { s.now = now }
}

func New(source Source, store Store, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		source:   source,
		store:    store,
		maxAge:   constants.CacheMaxAge,
		pageSize: constants.DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync returns the up-to-date trip collection for a unit, sorted by id
// ascending. forceRefresh discards the snapshot before deciding.
func (s *Synchronizer) Sync(ctx context.Context, unit model.Unit, forceRefresh bool) ([]model.Trip, error) {
	if forceRefresh {
		if err := s.store.Clear(unit); err != nil {
			return nil, err
		}
		util.LogInfo("Cache cleared, fetching fresh data")
	}

	snap, err := s.store.Load(unit)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			return nil, err
		}
		util.LogInfo("No snapshot found, fetching all trips")
		return s.refetchAll(ctx, unit)
	}

	if s.now().Sub(snap.FetchedAt) > s.maxAge {
		util.LogInfof("Snapshot from %s is stale, fetching all trips",
			snap.FetchedAt.Format(time.RFC3339))
		return s.refetchAll(ctx, unit)
	}

	latest, err := s.source.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync aborted: %w", err)
	}
	if latest == nil {
		return snap.Trips, nil
	}

	maxCached := model.MaxID(snap.Trips)
	if latest.ID <= maxCached {
		util.LogDebugf("Cache current (latest id %d <= cached max %d)", latest.ID, maxCached)
		return snap.Trips, nil
	}

	fresh, err := s.fetchNewer(ctx, maxCached)
	if err != nil {
		return nil, fmt.Errorf("sync aborted: %w", err)
	}

	merged := merge(snap.Trips, fresh)
	if err := s.store.Save(unit, &cache.Snapshot{
		FetchedAt: s.now(),
		Trips:     merged,
	}); err != nil {
		return nil, err
	}
	util.LogInfof("Added %d new trips to cache (%d total)", len(fresh), len(merged))
	return merged, nil
}

func (s *Synchronizer) refetchAll(ctx context.Context, unit model.Unit) ([]model.Trip, error) {
	trips, err := s.source.All(ctx, s.progress)
	if err != nil {
		return nil, fmt.Errorf("sync aborted: %w", err)
	}

	sortByID(trips)
	if err := s.store.Save(unit, &cache.Snapshot{
		FetchedAt: s.now(),
		Trips:     trips,
	}); err != nil {
		return nil, err
	}
	util.LogInfof("Cached %d trips", len(trips))
	return trips, nil
}

// fetchNewer pages through the remote source, collecting records with ids
// above maxCached. It stops as soon as a page contributes nothing new;
// the adapter guarantees newer records are reachable before that point.
func (s *Synchronizer) fetchNewer(ctx context.Context, maxCached int64) ([]model.Trip, error) {
	var fresh []model.Trip
	for page := 1; ; page++ {
		trips, err := s.source.Page(ctx, page, s.pageSize)
		if err != nil {
			return nil, err
		}
		if len(trips) == 0 {
			break
		}

		added := 0
		for _, t := range trips {
			if t.ID > maxCached {
				fresh = append(fresh, t)
				added++
			}
		}
		if added == 0 {
			break
		}
	}
	return fresh, nil
}

// merge combines cached and fresh records, deduplicating by id. Duplicates
// should not occur; when one does, the cached copy wins and the defect is
// logged.
func merge(cached, fresh []model.Trip) []model.Trip {
	seen := make(map[int64]bool, len(cached))
	merged := make([]model.Trip, 0, len(cached)+len(fresh))
	for _, t := range cached {
		if seen[t.ID] {
			util.LogWarnf("Duplicate trip id %d in cached set, keeping first copy", t.ID)
			continue
		}
		seen[t.ID] = true
		merged = append(merged, t)
	}
	for _, t := range fresh {
		if seen[t.ID] {
			util.LogWarnf("Duplicate trip id %d from remote, keeping cached copy", t.ID)
			continue
		}
		seen[t.ID] = true
		merged = append(merged, t)
	}

	sortByID(merged)
	return merged
}

func sortByID(trips []model.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].ID < trips[j].ID
	})
}
