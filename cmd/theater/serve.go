package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dcs-liberation/theater/internal/cache"
	"github.com/dcs-liberation/theater/internal/campaign"
	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/dispatcher"
	"github.com/dcs-liberation/theater/internal/handlers"
	"github.com/dcs-liberation/theater/internal/httpapi"
	"github.com/dcs-liberation/theater/internal/monitor"
	"github.com/dcs-liberation/theater/internal/region"
	"github.com/dcs-liberation/theater/internal/theater"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrNoCampaign is returned when --campaign matches no loadable campaign.
var ErrNoCampaign = errors.New("campaign not found")

var (
	handlerService  *handlers.Service
	queryDispatcher *dispatcher.Dispatcher
	monitorService  *monitor.Service
)

func runServe(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configDir := fs.String("config", ".", "directory containing "+config.ConfigFileName)
	campaignRef := fs.String("campaign", "", "campaign name or file path")
	fs.String("listen", "", "HTTP listen address, overrides api.listen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loadConfig(*configDir)
	if err := viper.BindPFlag("api.listen", fs.Lookup("listen")); err != nil {
		return err
	}
	setupLogging()
	defer closeLogging()

	regions, err := loadRegions(config.GetTheaterConfig())
	if err != nil {
		return err
	}

	c, t, err := loadCampaign(Logger, regions, config.GetTheaterConfig(), *campaignRef)
	if err != nil {
		return err
	}

	SlogManager.SetContextProvider(func() []slog.Attr {
		return []slog.Attr{slog.String("campaign", c.Name), slog.String("region", t.Region().Name)}
	})
	SlogManager.Setup(LogFile, config.GetLogConfig().Level, otelLogProvider())
	Logger = SlogManager.Logger()

	backend, err := initStorage()
	if err != nil {
		return err
	}
	sink := initInflux()

	cacheCfg := config.GetCacheConfig()
	deps := handlers.Dependencies{
		Cache:   cache.NewLandPosCache(cacheCfg.Size, cacheCfg.TTL),
		Backend: backend,
		Logger:  Logger,
	}
	// a nil *influx.Sink must not become a non-nil QuerySink
	if sink != nil {
		deps.Sink = sink
	}
	handlerService = handlers.NewService(deps)
	handlerService.Activate(c, t)

	queryDispatcher, err = dispatcher.New(dispatcherLogger())
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	handlerService.Register(queryDispatcher)
	Logger.Info("Commands registered", "commands", strings.Join(queryDispatcher.Commands(), " "))

	monitorCfg := config.GetMonitorConfig()
	monitorService = monitor.NewService(monitor.Dependencies{
		Mission:    handlerService.Mission(),
		Cache:      deps.Cache,
		Backend:    backend,
		Logger:     Logger,
		StatusPath: monitorCfg.StatusFile,
		Interval:   monitorCfg.Interval,
	})
	if err := monitorService.Start(); err != nil {
		Logger.Error("Failed to start status monitor", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiCfg := config.GetAPIConfig()
	var serveErr error
	if apiCfg.Enabled {
		server := httpapi.New(queryDispatcher, Logger, apiCfg.APIKey)
		serveErr = server.ListenAndServe(ctx, apiCfg)
	} else {
		Logger.Warn("HTTP API disabled, waiting for shutdown signal")
		<-ctx.Done()
	}

	monitorService.Stop()
	// drain queued query records before the stores close
	queryDispatcher.Close()
	if err := backend.Close(); err != nil {
		Logger.Error("Failed to close storage backend", "error", err)
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			Logger.Error("Failed to close influx sink", "error", err)
		}
	}
	Logger.Info("Shut down")
	return serveErr
}

// loadRegions returns the built-in region table, merged with the region
// file when one is configured.
func loadRegions(cfg config.TheaterConfig) (*region.Table, error) {
	if cfg.RegionsFile == "" {
		return region.Default(), nil
	}
	regions, err := region.LoadFile(cfg.RegionsFile)
	if err != nil {
		return nil, err
	}
	Logger.Info("Loaded region file", "path", cfg.RegionsFile, "regions", regions.Len())
	return regions, nil
}

// loadCampaign resolves ref as a file path first, then as a campaign name
// in the configured campaign directories, and builds its theater.
func loadCampaign(logger *slog.Logger, regions *region.Table, cfg config.TheaterConfig, ref string) (*campaign.Campaign, *theater.Theater, error) {
	if ref == "" {
		return nil, nil, fmt.Errorf("%w: --campaign is required", ErrNoCampaign)
	}

	var c *campaign.Campaign
	if _, err := os.Stat(ref); err == nil {
		c, err = campaign.FromFile(ref)
		if err != nil {
			return nil, nil, err
		}
	} else {
		c = findCampaign(campaign.LoadEach(logger, cfg.CampaignDirs...), ref)
		if c == nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrNoCampaign, ref)
		}
	}

	if !c.IsCompatible() {
		logger.Warn("Campaign format is not compatible", "campaign", c.Name,
			"version", c.Version.String(), "expected", campaign.FormatVersion.String())
	}

	t, err := c.LoadTheater(regions, cfg.LandmapDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load theater for %q: %w", c.Name, err)
	}
	logger.Info("Campaign loaded", "campaign", c.Name, "path", absOrSelf(c.Path), "region", t.Region().Name)
	return c, t, nil
}

// findCampaign matches name case-insensitively.
func findCampaign(campaigns []*campaign.Campaign, name string) *campaign.Campaign {
	for _, c := range campaigns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}
