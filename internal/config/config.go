// Package config loads planner settings from planner.cfg.json and the
// command line into the global viper instance.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "planner.cfg.json"

// DoctrineConfig holds the faction doctrine distances in nautical miles.
type DoctrineConfig struct {
	Name            string  `json:"name" mapstructure:"name"`
	IngressEgressNm float64 `json:"ingressEgressNm" mapstructure:"ingressEgressNm"`
	CapThreatNm     float64 `json:"capThreatNm" mapstructure:"capThreatNm"`
}

// SQLiteConfig holds the sqlite snapshot store settings.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects where plan snapshots are written.
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"` // "none", "sqlite" or "postgres"
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// DBConfig holds postgres connection settings.
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
	Metrics      bool          `json:"metrics" mapstructure:"metrics"`

	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "text")
	viper.SetDefault("logsDir", "./plannerlogs")

	viper.SetDefault("theaterFile", "theater.json")
	viper.SetDefault("side", "blue")

	viper.SetDefault("doctrine.name", "modern")
	viper.SetDefault("doctrine.ingressEgressNm", 45)
	viper.SetDefault("doctrine.capThreatNm", 50)
	viper.SetDefault("ewrPolicy", "ingress")

	viper.SetDefault("oca.minAircraft", 20)
	viper.SetDefault("report.limit", 5)
	viper.SetDefault("report.format", "text")

	viper.SetDefault("storage.type", "none")
	viper.SetDefault("storage.sqlite.path", "./planner.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "ocap")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "ocap-planner")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
	viper.SetDefault("otel.metrics", true)
	viper.SetDefault("otel.metricInterval", "30s")
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// reported as a wrapped viper.ConfigFileNotFoundError; the defaults are
// still in effect.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"theater":       "theaterFile",
	"side":          "side",
	"log-level":     "logLevel",
	"log-format":    "logFormat",
	"logs-dir":      "logsDir",
	"ewr-policy":    "ewrPolicy",
	"limit":         "report.limit",
	"format":        "report.format",
	"min-aircraft":  "oca.minAircraft",
	"storage":       "storage.type",
	"sqlite-path":   "storage.sqlite.path",
	"otel":          "otel.enabled",
	"otel-endpoint": "otel.endpoint",
}

// NewFlagSet declares the planner's command line flags. Flags that are set
// override the config file once bound with BindFlags.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config-dir", ".", "directory containing "+FileName)
	fs.StringP("theater", "t", "", "theater file (json, yaml or toml)")
	fs.StringP("side", "s", "", "side to plan for (blue or red)")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("log-format", "", "text or json")
	fs.String("logs-dir", "", "directory for log files, empty to log to stderr")
	fs.String("ewr-policy", "", `EWR range policy: "ingress", "detection" or an expression`)
	fs.IntP("limit", "n", 0, "objectives listed per section")
	fs.StringP("format", "f", "", "report format: text or yaml")
	fs.Int("min-aircraft", 0, "aircraft an airfield needs to be an OCA target")
	fs.String("storage", "", "snapshot storage: none, sqlite or postgres")
	fs.String("sqlite-path", "", "sqlite snapshot database")
	fs.Bool("otel", false, "enable OpenTelemetry export")
	fs.String("otel-endpoint", "", "OTLP HTTP endpoint for logs")
	return fs
}

// BindFlags binds the flags declared by NewFlagSet to their config keys.
func BindFlags(fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %q: %w", flag, err)
		}
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

// GetDoctrineConfig returns the doctrine section.
func GetDoctrineConfig() DoctrineConfig {
	return DoctrineConfig{
		Name:            viper.GetString("doctrine.name"),
		IngressEgressNm: viper.GetFloat64("doctrine.ingressEgressNm"),
		CapThreatNm:     viper.GetFloat64("doctrine.capThreatNm"),
	}
}

// GetStorageConfig returns the storage section.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetDBConfig returns the postgres connection settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
		Metrics:      viper.GetBool("otel.metrics"),

		MetricInterval: viper.GetDuration("otel.metricInterval"),
	}
}
