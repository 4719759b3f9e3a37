// internal/storage/storage.go
package storage

import "github.com/dcs-liberation/theater/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Control point snapshots, one set per region. Saving replaces the
	// region's previous set; loading a region never saved returns nil.
	SaveControlPoints(region string, cps []core.ControlPointSnapshot) error
	LoadControlPoints(region string) ([]core.ControlPointSnapshot, error)

	// Query audit
	RecordQuery(q *core.QueryRecord) error
}

// QueryReader is an optional interface for backends that can list recorded
// queries, newest first.
type QueryReader interface {
	RecentQueries(limit int) ([]core.QueryRecord, error)
}
