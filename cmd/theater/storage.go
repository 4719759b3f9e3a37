package main

import (
	"context"
	"errors"
	"time"

	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/influx"
	"github.com/dcs-liberation/theater/internal/storage"
)

// initStorage creates and initializes the configured backend.
func initStorage() (storage.Backend, error) {
	storageCfg := config.GetStorageConfig()

	backend, err := storage.NewBackend(storageCfg, config.GetDBConfig(), Logger)
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return nil, err
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err)
		return nil, err
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)
	return backend, nil
}

// initInflux connects the query-latency sink. Failures are logged and the
// server runs without it.
func initInflux() *influx.Sink {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sink, err := influx.Connect(ctx, config.GetInfluxConfig(), Logger)
	switch {
	case errors.Is(err, influx.ErrDisabled):
		return nil
	case err != nil:
		Logger.Error("Failed to connect to InfluxDB, query latencies will not be exported", "error", err)
		return nil
	}
	return sink
}
