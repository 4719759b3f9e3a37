// Package monitor periodically writes a status snapshot of the running
// query server to a file and the log.
package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dcs-liberation/theater/internal/cache"
	"github.com/dcs-liberation/theater/internal/mission"
)

// PendingCounter is implemented by storage backends that buffer writes.
type PendingCounter interface {
	Pending() int
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Mission *mission.Context
	Cache   *cache.LandPosCache
	Backend any
	Logger  *slog.Logger

	StatusPath string
	Interval   time.Duration
}

// CacheStatus reports nearest-land cache usage.
type CacheStatus struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
}

// Status is one snapshot of the server state.
type Status struct {
	Time           time.Time    `json:"time"`
	Campaign       string       `json:"campaign,omitempty"`
	Region         string       `json:"region,omitempty"`
	Cache          *CacheStatus `json:"cache,omitempty"`
	PendingRecords int          `json:"pendingRecords"`
	UptimeSeconds  float64      `json:"uptimeSeconds"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	started   time.Time
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = 10 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{
		deps:    deps,
		started: time.Now(),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus returns the current server status.
func (s *Service) GetStatus() Status {
	st := Status{
		Time:          time.Now(),
		UptimeSeconds: time.Since(s.started).Seconds(),
	}
	if s.deps.Mission != nil {
		if c := s.deps.Mission.GetCampaign(); c != nil {
			st.Campaign = c.Name
		}
		st.Region = s.deps.Mission.RegionName()
	}
	if s.deps.Cache != nil {
		st.Cache = &CacheStatus{
			Entries: s.deps.Cache.Len(),
			Hits:    s.deps.Cache.Hits.Value(),
			Misses:  s.deps.Cache.Misses.Value(),
		}
	}
	if p, ok := s.deps.Backend.(PendingCounter); ok {
		st.PendingRecords = p.Pending()
	}
	return st
}

// WriteStatus replaces the status file with the current status.
func (s *Service) WriteStatus() error {
	data, err := json.MarshalIndent(s.GetStatus(), "", "  ")
	if err != nil {
		return err
	}
	tmp := s.deps.StatusPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	return os.Rename(tmp, s.deps.StatusPath)
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.stopChan, s.done)
	return nil
}

func (s *Service) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	logger := s.deps.Logger
	logger.Debug("Starting status monitor", "interval", s.deps.Interval, "path", s.deps.StatusPath)

	ticker := time.NewTicker(s.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			st := s.GetStatus()
			logger.Debug("Status", "campaign", st.Campaign, "pendingRecords", st.PendingRecords, "cache", st.Cache)
			if s.deps.StatusPath == "" {
				continue
			}
			if err := s.WriteStatus(); err != nil {
				logger.Error("Error writing status file", "error", err)
			}
		}
	}
}

// Stop stops the status monitor and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()
	<-done
}
