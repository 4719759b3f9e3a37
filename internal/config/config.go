package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is looked up in the directory passed to Load.
const ConfigFileName = "theater.cfg.json"

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	Type          string        `json:"type" mapstructure:"type"`
	Memory        MemoryConfig  `json:"memory" mapstructure:"memory"`
	SQLite        SQLiteConfig  `json:"sqlite" mapstructure:"sqlite"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval"`
	BatchSize     int           `json:"batchSize" mapstructure:"batchSize"`
	MaxPending    int           `json:"maxPending" mapstructure:"maxPending"`
}

// MemoryConfig holds memory storage backend settings
type MemoryConfig struct {
	MaxQueries int `json:"maxQueries" mapstructure:"maxQueries"`
}

// SQLiteConfig holds SQLite storage backend settings. An empty Path keeps
// the database in memory; DumpPath then receives a copy on shutdown.
type SQLiteConfig struct {
	Path     string `json:"path" mapstructure:"path"`
	DumpPath string `json:"dumpPath" mapstructure:"dumpPath"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	Graylog    string // GELF UDP address, empty disables shipping
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// APIConfig holds the HTTP query server settings.
type APIConfig struct {
	Enabled      bool
	Listen       string
	APIKey       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// InfluxConfig holds the query-latency sink settings.
type InfluxConfig struct {
	Enabled    bool
	Protocol   string
	Host       string
	Port       string
	Token      string
	Org        string
	Bucket     string
	BackupPath string
}

// URL returns the server address.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// CacheConfig sizes the nearest-land result cache. A zero TTL never expires.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// MonitorConfig controls the periodic status snapshot. An empty StatusFile
// only logs the status.
type MonitorConfig struct {
	StatusFile string
	Interval   time.Duration
}

// TheaterConfig locates the static theater data.
type TheaterConfig struct {
	RegionsFile  string
	LandmapDir   string
	CampaignDirs []string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./theaterlogs")
	viper.SetDefault("logMaxSizeMB", 50)
	viper.SetDefault("logMaxBackups", 5)
	viper.SetDefault("logGraylog", "")

	viper.SetDefault("theater.regionsFile", "")
	viper.SetDefault("theater.landmapDir", "./resources/landmaps")
	viper.SetDefault("theater.campaignDirs", []string{"./resources/campaigns"})

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.listen", "127.0.0.1:16880")
	viper.SetDefault("api.apiKey", "")
	viper.SetDefault("api.readTimeout", "5s")
	viper.SetDefault("api.writeTimeout", "10s")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "theater")
	viper.SetDefault("db.sslmode", "disable")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "liberation")
	viper.SetDefault("influx.bucket", "theater-queries")
	viper.SetDefault("influx.backupPath", "")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.maxQueries", 10000)
	viper.SetDefault("storage.sqlite.path", "./theater.db")
	viper.SetDefault("storage.sqlite.dumpPath", "")
	viper.SetDefault("storage.flushInterval", "2s")
	viper.SetDefault("storage.batchSize", 500)
	viper.SetDefault("storage.maxPending", 100000)

	viper.SetDefault("cache.size", 4096)
	viper.SetDefault("cache.ttl", "0s")

	viper.SetDefault("monitor.statusFile", "")
	viper.SetDefault("monitor.interval", "10s")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "theater")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			MaxQueries: viper.GetInt("storage.memory.maxQueries"),
		},
		SQLite: SQLiteConfig{
			Path:     viper.GetString("storage.sqlite.path"),
			DumpPath: viper.GetString("storage.sqlite.dumpPath"),
		},
		FlushInterval: viper.GetDuration("storage.flushInterval"),
		BatchSize:     viper.GetInt("storage.batchSize"),
		MaxPending:    viper.GetInt("storage.maxPending"),
	}
}

// GetDBConfig returns the Postgres connection configuration.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
		SSLMode:  viper.GetString("db.sslmode"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetAPIConfig returns the HTTP server configuration.
func GetAPIConfig() APIConfig {
	return APIConfig{
		Enabled:      viper.GetBool("api.enabled"),
		Listen:       viper.GetString("api.listen"),
		APIKey:       viper.GetString("api.apiKey"),
		ReadTimeout:  viper.GetDuration("api.readTimeout"),
		WriteTimeout: viper.GetDuration("api.writeTimeout"),
	}
}

// GetInfluxConfig returns the InfluxDB configuration.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Protocol:   viper.GetString("influx.protocol"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetCacheConfig returns the nearest-land cache configuration.
func GetCacheConfig() CacheConfig {
	return CacheConfig{
		Size: viper.GetInt("cache.size"),
		TTL:  viper.GetDuration("cache.ttl"),
	}
}

// GetTheaterConfig returns the locations of region, landmap and campaign data.
func GetTheaterConfig() TheaterConfig {
	return TheaterConfig{
		RegionsFile:  viper.GetString("theater.regionsFile"),
		LandmapDir:   viper.GetString("theater.landmapDir"),
		CampaignDirs: viper.GetStringSlice("theater.campaignDirs"),
	}
}

// GetLogConfig returns the logging configuration.
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:      viper.GetString("logLevel"),
		Dir:        viper.GetString("logsDir"),
		MaxSizeMB:  viper.GetInt("logMaxSizeMB"),
		MaxBackups: viper.GetInt("logMaxBackups"),
		Graylog:    viper.GetString("logGraylog"),
	}
}

// GetMonitorConfig returns the status monitor configuration.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		StatusFile: viper.GetString("monitor.statusFile"),
		Interval:   viper.GetDuration("monitor.interval"),
	}
}
