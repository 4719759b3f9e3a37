// internal/storage/memory/memory.go
package memory

import (
	"slices"
	"sync"

	"github.com/dcs-liberation/theater/pkg/core"
)

// Backend keeps snapshots and query records in memory. Nothing survives a
// restart.
type Backend struct {
	snapshots  map[string][]core.ControlPointSnapshot // keyed by region
	queries    []core.QueryRecord
	maxQueries int

	idCounter uint
	mu        sync.RWMutex
}

// New creates a new memory backend retaining at most maxQueries query
// records. Zero keeps everything.
func New(maxQueries int) *Backend {
	return &Backend{
		snapshots:  make(map[string][]core.ControlPointSnapshot),
		maxQueries: maxQueries,
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveControlPoints replaces the region's snapshot set.
func (b *Backend) SaveControlPoints(region string, cps []core.ControlPointSnapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots[region] = cloneSnapshots(cps)
	return nil
}

// LoadControlPoints returns a copy of the region's snapshot set.
func (b *Backend) LoadControlPoints(region string) ([]core.ControlPointSnapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	snaps, ok := b.snapshots[region]
	if !ok {
		return nil, nil
	}
	return cloneSnapshots(snaps), nil
}

// RecordQuery stores q and assigns its ID.
func (b *Backend) RecordQuery(q *core.QueryRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	q.ID = b.idCounter

	rec := *q
	rec.Args = slices.Clone(q.Args)
	b.queries = append(b.queries, rec)
	if b.maxQueries > 0 && len(b.queries) > b.maxQueries {
		b.queries = slices.Clone(b.queries[len(b.queries)-b.maxQueries:])
	}
	return nil
}

// RecentQueries returns up to limit records, newest first. A non-positive
// limit returns all of them.
func (b *Backend) RecentQueries(limit int) ([]core.QueryRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.queries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]core.QueryRecord, 0, n)
	for i := len(b.queries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, b.queries[i])
	}
	return out, nil
}

func cloneSnapshots(in []core.ControlPointSnapshot) []core.ControlPointSnapshot {
	out := make([]core.ControlPointSnapshot, len(in))
	for i, s := range in {
		s.GroundObjects = slices.Clone(s.GroundObjects)
		s.FrontLines = slices.Clone(s.FrontLines)
		if s.AirportID != nil {
			id := *s.AirportID
			s.AirportID = &id
		}
		out[i] = s
	}
	return out
}
