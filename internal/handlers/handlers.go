package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dcs-liberation/theater/internal/cache"
	"github.com/dcs-liberation/theater/internal/campaign"
	"github.com/dcs-liberation/theater/internal/dispatcher"
	"github.com/dcs-liberation/theater/internal/mission"
	"github.com/dcs-liberation/theater/internal/storage"
	"github.com/dcs-liberation/theater/internal/theater"
	"github.com/dcs-liberation/theater/pkg/core"
)

// Query commands.
const (
	CmdIsOnLand        = ":IS_ON_LAND:"
	CmdIsInSea         = ":IS_IN_SEA:"
	CmdNearestLand     = ":NEAREST_LAND:"
	CmdClosestCP       = ":CLOSEST_CP:"
	CmdClosestTarget   = ":CLOSEST_TARGET:"
	CmdClosestOpposing = ":CLOSEST_OPPOSING:"
	CmdConflictHeading = ":CONFLICT_HEADING:"
	CmdCPNamed         = ":CP_NAMED:"
)

// State and audit commands.
const (
	CmdSaveControlPoints    = ":SAVE_CONTROL_POINTS:"
	CmdRestoreControlPoints = ":RESTORE_CONTROL_POINTS:"
	CmdRecentQueries        = ":RECENT_QUERIES:"
	CmdRecordQuery          = ":RECORD_QUERY:"
)

// RecordBufferSize is the queue length of the audit command.
const RecordBufferSize = 1000

var (
	// ErrBadArgs is returned when a command's arguments cannot be parsed.
	ErrBadArgs = errors.New("invalid arguments")

	// ErrNoBackend is returned by state commands when no storage is configured.
	ErrNoBackend = errors.New("no storage backend configured")
)

// QuerySink receives a copy of every recorded query, e.g. the InfluxDB
// latency writer.
type QuerySink interface {
	WriteQuery(q core.QueryRecord) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Mission *mission.Context
	Cache   *cache.LandPosCache
	Backend storage.Backend
	Sink    QuerySink
	Logger  *slog.Logger
}

// Service answers theater queries on top of the active mission context.
type Service struct {
	deps       Dependencies
	dispatcher *dispatcher.Dispatcher
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Mission == nil {
		deps.Mission = mission.NewContext()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{deps: deps}
}

// Mission returns the mission context the service reads from.
func (s *Service) Mission() *mission.Context {
	return s.deps.Mission
}

// Activate makes t the active theater and drops cached results of the
// previous one.
func (s *Service) Activate(c *campaign.Campaign, t *theater.Theater) {
	s.deps.Mission.SetTheater(c, t)
	if s.deps.Cache != nil {
		s.deps.Cache.Purge()
	}
	s.deps.Logger.Info("Theater activated",
		"campaign", c.Name,
		"region", t.Region().Name,
		"controlPoints", len(t.ControlPoints()),
		"landmap", t.Landmap() != nil,
	)
}

// Register adds every command to d. Queries are recorded through the
// buffered audit command when a backend or sink is configured.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	s.dispatcher = d

	s.registerQuery(d, CmdIsOnLand, s.isOnLand)
	s.registerQuery(d, CmdIsInSea, s.isInSea)
	s.registerQuery(d, CmdNearestLand, s.nearestLand)
	s.registerQuery(d, CmdClosestCP, s.closestControlPoint)
	s.registerQuery(d, CmdClosestTarget, s.closestTarget)
	s.registerQuery(d, CmdClosestOpposing, s.closestOpposing)
	s.registerQuery(d, CmdConflictHeading, s.conflictHeading)
	s.registerQuery(d, CmdCPNamed, s.controlPointNamed)

	d.Register(CmdSaveControlPoints, s.saveControlPoints, dispatcher.Logged())
	d.Register(CmdRestoreControlPoints, s.restoreControlPoints, dispatcher.Logged())
	d.Register(CmdRecentQueries, s.recentQueries)

	if s.deps.Backend != nil || s.deps.Sink != nil {
		d.Register(CmdRecordQuery, s.recordQuery, dispatcher.Buffered(RecordBufferSize))
	}
}

type queryFunc func(t *theater.Theater, args []string) (any, error)

func (s *Service) registerQuery(d *dispatcher.Dispatcher, command string, fn queryFunc) {
	d.Register(command, func(r dispatcher.Request) (any, error) {
		start := time.Now()
		var (
			result any
			region string
		)
		err := s.deps.Mission.Read(func(t *theater.Theater) error {
			region = t.Region().Name
			var err error
			result, err = fn(t, r.Args)
			return err
		})
		s.record(r, region, result, err, time.Since(start))
		return result, err
	}, dispatcher.Logged())
}

// record hands the audit entry of one query to the buffered audit command.
func (s *Service) record(r dispatcher.Request, region string, result any, queryErr error, took time.Duration) {
	if s.dispatcher == nil || !s.dispatcher.HasHandler(CmdRecordQuery) {
		return
	}

	q := core.QueryRecord{
		Time:     r.Timestamp,
		Region:   region,
		Command:  r.Command,
		Args:     r.Args,
		Duration: took,
	}
	if queryErr != nil {
		q.Error = queryErr.Error()
	} else if data, err := json.Marshal(result); err == nil {
		q.Result = string(data)
	}

	payload, err := json.Marshal(q)
	if err != nil {
		s.deps.Logger.Error("Unable to encode query record", "command", r.Command, "error", err)
		return
	}
	if _, err := s.dispatcher.Dispatch(dispatcher.Request{Command: CmdRecordQuery, Args: []string{string(payload)}}); err != nil {
		s.deps.Logger.Warn("Query record dropped", "command", r.Command, "error", err)
	}
}

// recordQuery persists one encoded QueryRecord.
func (s *Service) recordQuery(r dispatcher.Request) (any, error) {
	if len(r.Args) != 1 {
		return nil, fmt.Errorf("%w: expected 1 argument, got %d", ErrBadArgs, len(r.Args))
	}
	var q core.QueryRecord
	if err := json.Unmarshal([]byte(r.Args[0]), &q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgs, err)
	}

	var errs []error
	if s.deps.Backend != nil {
		errs = append(errs, s.deps.Backend.RecordQuery(&q))
	}
	if s.deps.Sink != nil {
		errs = append(errs, s.deps.Sink.WriteQuery(q))
	}
	return nil, errors.Join(errs...)
}

func (s *Service) saveControlPoints(r dispatcher.Request) (any, error) {
	if s.deps.Backend == nil {
		return nil, ErrNoBackend
	}

	var (
		region string
		snaps  []core.ControlPointSnapshot
	)
	err := s.deps.Mission.Read(func(t *theater.Theater) error {
		region = t.Region().Name
		snaps = core.SnapshotAll(t.ControlPoints())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.deps.Backend.SaveControlPoints(region, snaps); err != nil {
		return nil, err
	}
	return CountResult{Region: region, Count: len(snaps)}, nil
}

func (s *Service) restoreControlPoints(r dispatcher.Request) (any, error) {
	if s.deps.Backend == nil {
		return nil, ErrNoBackend
	}

	var result CountResult
	err := s.deps.Mission.Mutate(func(t *theater.Theater) error {
		region := t.Region().Name
		snaps, err := s.deps.Backend.LoadControlPoints(region)
		if err != nil {
			return err
		}
		if snaps == nil {
			return fmt.Errorf("control points of %s: %w", region, theater.ErrNotFound)
		}
		cps, err := core.RestoreControlPoints(snaps)
		if err != nil {
			return err
		}
		t.ReplaceControlPoints(cps)
		result = CountResult{Region: region, Count: len(cps)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) recentQueries(r dispatcher.Request) (any, error) {
	reader, ok := s.deps.Backend.(storage.QueryReader)
	if !ok {
		return nil, ErrNoBackend
	}
	limit, err := intArg(r.Args, 0, 50)
	if err != nil {
		return nil, err
	}
	return reader.RecentQueries(limit)
}
