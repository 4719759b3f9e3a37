// Package gormstore implements the storage.Backend interface using GORM over
// SQLite or PostgreSQL. Query records go through an internal queue drained
// by a background writer; control point snapshots are written directly.
package gormstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dcs-liberation/theater/internal/database"
	"github.com/dcs-liberation/theater/internal/model"
	"github.com/dcs-liberation/theater/internal/model/convert"
	"github.com/dcs-liberation/theater/internal/queue"
	"github.com/dcs-liberation/theater/pkg/core"

	"gorm.io/gorm"
)

const (
	defaultFlushInterval = 2 * time.Second
	defaultBatchSize     = 500
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Config tunes the background writer.
type Config struct {
	FlushInterval time.Duration
	BatchSize     int
	MaxPending    int    // oldest query records are dropped beyond this, 0 is unbounded
	DumpPath      string // SQLite only: VACUUM INTO target written on Close
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps    Dependencies
	cfg     Config
	queries *queue.Queue[model.QueryRecord]

	flushMu   sync.Mutex
	dropped   int // drops already reported, guarded by flushMu
	stopChan  chan struct{}
	done      chan struct{}
	started   bool
	closeOnce sync.Once
}

// New creates a new GORM storage backend.
func New(deps Dependencies, cfg Config) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Backend{
		deps:     deps,
		cfg:      cfg,
		queries:  queue.NewBounded[model.QueryRecord](cfg.MaxPending),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Init runs schema migration and starts the DB writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return errors.New("gormstore: no database connection")
	}
	if err := database.Migrate(b.deps.DB); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.deps.Logger.Info("Database setup complete", "dialect", b.deps.DB.Dialector.Name())

	b.started = true
	go b.writeLoop()
	return nil
}

// Close stops the writer, flushes pending records, writes the dump if one is
// configured and closes the connection.
func (b *Backend) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.stopChan)
		if b.started {
			<-b.done
		} else if b.deps.DB != nil {
			err = b.Flush()
		}
		if b.deps.DB == nil {
			return
		}

		if b.cfg.DumpPath != "" {
			start := time.Now()
			if dumpErr := database.DumpToFile(b.deps.DB, b.cfg.DumpPath); dumpErr != nil {
				err = errors.Join(err, dumpErr)
			} else {
				b.deps.Logger.Debug("Dumped database to disk", "path", b.cfg.DumpPath, "duration", time.Since(start))
			}
		}

		sqlDB, dbErr := b.deps.DB.DB()
		if dbErr != nil {
			err = errors.Join(err, dbErr)
			return
		}
		err = errors.Join(err, sqlDB.Close())
	})
	return err
}

// SaveControlPoints replaces the region's saved control points in one
// transaction.
func (b *Backend) SaveControlPoints(region string, cps []core.ControlPointSnapshot) error {
	rows := make([]model.ControlPoint, len(cps))
	for i, s := range cps {
		rows[i] = convert.CoreToControlPoint(region, i, s)
	}

	return b.deps.DB.Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&model.ControlPoint{}).Select("id").Where("region = ?", region)
		if err := tx.Where("control_point_id IN (?)", ids).Delete(&model.GroundObject{}).Error; err != nil {
			return fmt.Errorf("failed to delete ground objects of %s: %w", region, err)
		}
		if err := tx.Where("region = ?", region).Delete(&model.ControlPoint{}).Error; err != nil {
			return fmt.Errorf("failed to delete control points of %s: %w", region, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert control points of %s: %w", region, err)
		}
		return nil
	})
}

// LoadControlPoints returns the region's saved control points in their
// original order, or nil if none were saved.
func (b *Backend) LoadControlPoints(region string) ([]core.ControlPointSnapshot, error) {
	var rows []model.ControlPoint
	err := b.deps.DB.
		Preload("GroundObjects", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		Where("region = ?", region).
		Order("ordinal").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load control points of %s: %w", region, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]core.ControlPointSnapshot, 0, len(rows))
	for _, row := range rows {
		s, err := convert.ControlPointToCore(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// RecordQuery converts and queues a query record. The ID is assigned by the
// database when the queue is flushed and is not written back to q.
func (b *Backend) RecordQuery(q *core.QueryRecord) error {
	row := convert.CoreToQueryRecord(*q)
	row.ID = 0
	b.queries.Push(row)
	return nil
}

// RecentQueries flushes pending records and returns up to limit of them,
// newest first. A non-positive limit returns all of them.
func (b *Backend) RecentQueries(limit int) ([]core.QueryRecord, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}

	var rows []model.QueryRecord
	tx := b.deps.DB.Order("id desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load query records: %w", err)
	}

	out := make([]core.QueryRecord, len(rows))
	for i, row := range rows {
		out[i] = convert.QueryRecordToCore(row)
	}
	return out, nil
}

// Pending returns the number of queued query records.
func (b *Backend) Pending() int {
	return b.queries.Len()
}

// Flush writes every queued query record now.
func (b *Backend) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	if total := b.queries.Dropped(); total > b.dropped {
		b.deps.Logger.Warn("Query record queue full, oldest records dropped",
			"dropped", total-b.dropped, "total", total, "maxPending", b.cfg.MaxPending)
		b.dropped = total
	}

	n, err := writeQueue(b.deps.DB, b.queries, b.cfg.BatchSize)
	if err != nil {
		b.deps.Logger.Error("Error creating query records", "error", err)
		return err
	}
	if n > 0 {
		b.deps.Logger.Debug("Wrote query records", "count", n)
	}
	return nil
}

// writeQueue writes all items from a queue to the database in a transaction.
// Items are put back at the head of the queue on failure.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], batchSize int) (int, error) {
	if q.Empty() {
		return 0, nil
	}

	items := q.GetAndEmpty()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(items, batchSize).Error
	})
	if err != nil {
		q.Requeue(items...)
		return 0, err
	}
	return len(items), nil
}

// writeLoop periodically drains the queue until Close.
func (b *Backend) writeLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			_ = b.Flush()
			return
		case <-ticker.C:
			_ = b.Flush()
		}
	}
}
