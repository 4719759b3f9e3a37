package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/pkg/core"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
)

// QueryMeasurement is the measurement name of query points.
const QueryMeasurement = "theater_query"

// ErrDisabled is returned by Connect when influx.enabled is false.
var ErrDisabled = errors.New("influx is disabled")

// Sink writes query latency points to InfluxDB, or to a gzipped
// line-protocol backup file when the server is unreachable.
type Sink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	logger *slog.Logger

	mu           sync.Mutex
	backupFile   io.Closer
	backupWriter *gzip.Writer
}

// Connect establishes a connection to InfluxDB and ensures the organization
// and bucket exist. If the server does not answer and cfg.BackupPath is set,
// the sink falls back to the backup file.
func Connect(ctx context.Context, cfg config.InfluxConfig, logger *slog.Logger) (*Sink, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sink{logger: logger}
	s.client = influxdb2.NewClientWithOptions(
		cfg.URL(),
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	running, err := s.client.Ping(ctx)
	if err != nil || !running {
		s.client.Close()
		s.client = nil
		if cfg.BackupPath == "" {
			return nil, fmt.Errorf("influx unreachable at %s: %v", cfg.URL(), err)
		}

		logger.Info("Failed to reach InfluxDB, writing to backup file", "backupPath", cfg.BackupPath)
		file, err := os.OpenFile(cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("error creating backup file: %w", err)
		}
		s.backupFile = file
		s.backupWriter = gzip.NewWriter(file)
		return s, nil
	}

	if err := s.setupOrganizationAndBucket(ctx, cfg.Org, cfg.Bucket); err != nil {
		s.client.Close()
		return nil, err
	}

	s.writer = s.client.WriteAPI(cfg.Org, cfg.Bucket)
	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			logger.Error("Error sending data to InfluxDB", "bucket", cfg.Bucket, "error", writeErr)
		}
	}(s.writer.Errors())

	logger.Info("InfluxDB client initialized", "url", cfg.URL(), "bucket", cfg.Bucket)
	return s, nil
}

func (s *Sink) setupOrganizationAndBucket(ctx context.Context, orgName, bucket string) error {
	// ensure org exists
	org, err := s.client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		s.logger.Info("Organization not found, creating", "org", orgName)
		org, err = s.client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			return fmt.Errorf("error creating organization %s: %w", orgName, err)
		}
	}

	// ensure bucket exists with 30 day retention
	if _, err = s.client.BucketsAPI().FindBucketByName(ctx, bucket); err != nil {
		s.logger.Info("Bucket not found, creating", "bucket", bucket)

		rule := domain.RetentionRuleTypeExpire
		_, err = s.client.BucketsAPI().CreateBucketWithName(ctx, org, bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 30,
		})
		if err != nil {
			return fmt.Errorf("error creating bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// QueryPoint builds the latency point of one query.
func QueryPoint(q core.QueryRecord) *influxdb2_write.Point {
	status := "ok"
	if q.Failed() {
		status = "error"
	}
	return influxdb2_write.NewPoint(
		QueryMeasurement,
		map[string]string{
			"region":  q.Region,
			"command": q.Command,
			"status":  status,
		},
		map[string]interface{}{
			"duration_ms": float64(q.Duration) / float64(time.Millisecond),
			"args":        len(q.Args),
		},
		q.Time,
	)
}

// WriteQuery sends the latency point of q.
func (s *Sink) WriteQuery(q core.QueryRecord) error {
	point := QueryPoint(q)
	if s.writer != nil {
		s.writer.WritePoint(point)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}
	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if _, err := s.backupWriter.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Close flushes pending points and releases the connection or backup file.
func (s *Sink) Close() error {
	if s.writer != nil {
		s.writer.Flush()
	}
	if s.client != nil {
		s.client.Close()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backupWriter == nil {
		return nil
	}
	err := errors.Join(s.backupWriter.Close(), s.backupFile.Close())
	s.backupWriter = nil
	return err
}
