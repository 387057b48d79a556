package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/OCAP2/planner/internal/cache"
	"github.com/OCAP2/planner/internal/config"
	"github.com/OCAP2/planner/internal/doctrine"
	"github.com/OCAP2/planner/internal/logging"
	"github.com/OCAP2/planner/internal/objective"
	intOtel "github.com/OCAP2/planner/internal/otel"
	"github.com/OCAP2/planner/internal/report"
	"github.com/OCAP2/planner/internal/storage"
	"github.com/OCAP2/planner/internal/theater"
	"github.com/OCAP2/planner/internal/threatzone"
	"github.com/OCAP2/planner/internal/transfers"
	"github.com/OCAP2/planner/pkg/core"
	"github.com/spf13/viper"
)

const (
	appName   = "planner"
	meterName = "github.com/OCAP2/planner/internal/objective"
)

// session holds what a run sets up before planning and tears down after.
type session struct {
	side     core.Side
	format   report.Format
	logFile  *os.File
	logs     *logging.SlogManager
	logger   *slog.Logger
	provider *intOtel.Provider
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := config.NewFlagSet(appName)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}
	configDir, _ := fs.GetString("config-dir")

	var notFound viper.ConfigFileNotFoundError
	cfgErr := config.Load(configDir)
	if cfgErr != nil && !errors.As(cfgErr, &notFound) {
		return cfgErr
	}

	s, err := newSession(time.Now())
	if err != nil {
		return err
	}
	defer s.close()
	if cfgErr != nil {
		s.logger.Warn("No config file found, using defaults", "dir", configDir)
	}

	command := "plan"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}
	switch command {
	case "plan":
		return s.plan(ctx, stdout)
	case "latest":
		return s.latest(ctx, stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func newSession(start time.Time) (*session, error) {
	side, err := core.ParseSide(config.GetString("side"))
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(config.GetString("report.format"))
	if err != nil {
		return nil, err
	}
	s := &session{side: side, format: format}

	if dir := config.GetString("logsDir"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
		path := logging.LogFilePath(dir, appName, start)
		s.logFile, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
	}

	otelCfg := config.GetOTelConfig()
	cfg := intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	}
	if s.logFile != nil {
		cfg.LogWriter = s.logFile
		if otelCfg.Metrics {
			cfg.MetricWriter = s.logFile
			cfg.MetricInterval = otelCfg.MetricInterval
		}
	}
	s.provider, err = intOtel.New(cfg)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("initializing otel: %w", err)
	}

	s.logs = logging.NewSlogManager(logging.PlanningContext(string(side), config.GetString("theaterFile")))
	var file io.Writer
	if s.logFile != nil {
		file = s.logFile
	}
	s.logs.Setup(file, config.GetString("logLevel"), s.provider.LoggerProvider())
	s.logger = s.logs.Logger()
	return s, nil
}

func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.logs != nil {
		_ = s.logs.Flush(ctx)
	}
	if s.provider != nil {
		if err := s.provider.Shutdown(ctx); err != nil && s.logger != nil {
			s.logger.Error("Failed to shut down otel", "error", err)
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// finderLogger is the slog logger, or a zerolog JSON logger when the log
// format asks for machine readable records.
func (s *session) finderLogger() objective.Logger {
	if config.GetString("logFormat") != "json" {
		return s.logger
	}
	var w io.Writer = os.Stderr
	if s.logFile != nil {
		w = s.logFile
	}
	zl := logging.NewJSONLogger(w, config.GetString("logLevel")).With().
		Str("component", "objective").
		Logger()
	return logging.NewKeyValueLogger(zl)
}

func (s *session) openStorage() (storage.Backend, error) {
	backend, err := storage.NewBackend(config.GetStorageConfig(), config.GetDBConfig(), s.logger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return backend, nil
}

func (s *session) newFinder(sc *theater.Scenario) (*objective.Finder, error) {
	dc := config.GetDoctrineConfig()
	d := doctrine.FromNauticalMiles(dc.Name, dc.IngressEgressNm, dc.CapThreatNm)
	logger := s.finderLogger()
	policy, err := doctrine.NewRangePolicy(config.GetString("ewrPolicy"), d, logger)
	if err != nil {
		return nil, err
	}

	t := sc.Theater
	threats := threatzone.ForSide(t.ControlPoints(), s.side.Opponent(), d)
	s.logger.Debug("Threat zone built",
		"airDefenses", threats.AirDefenseCount(),
		"airbases", threats.AirbaseCount(),
	)

	return objective.New(s.side, objective.Dependencies{
		Theater:   t,
		Threats:   threats,
		Airfields: cache.NewObjectiveDistanceCache(t.ControlPoints()),
		Transfers: transfers.NewRegistry(sc.Convoys, sc.CargoShips),
		Doctrine:  d,
		EWRPolicy: policy,
		Logger:    logger,
		Meter:     s.provider.Meter(meterName),
	})
}

func (s *session) plan(ctx context.Context, stdout io.Writer) error {
	path := config.GetString("theaterFile")
	sc, err := theater.Load(path)
	if err != nil {
		return err
	}
	s.logger.Info("Theater loaded", "path", path, "controlPoints", sc.Theater.Len())

	f, err := s.newFinder(sc)
	if err != nil {
		return err
	}

	p, err := report.Build(ctx, f, report.Options{
		Theater:     sc.Theater.Name,
		Limit:       config.GetInt("report.limit"),
		MinAircraft: config.GetInt("oca.minAircraft"),
	})
	if err != nil {
		s.logger.Error("Planning failed", "error", err)
		return err
	}

	backend, err := s.openStorage()
	if err != nil {
		return err
	}
	defer backend.Close()
	id, err := backend.SaveSnapshot(ctx, p)
	if err != nil {
		return err
	}
	if id != "" {
		s.logger.Info("Plan stored", "uuid", id)
	}

	return report.Render(stdout, p, s.format)
}

func (s *session) latest(ctx context.Context, stdout io.Writer) error {
	backend, err := s.openStorage()
	if err != nil {
		return err
	}
	defer backend.Close()

	p, err := backend.LatestSnapshot(ctx, s.side)
	if err != nil {
		return err
	}
	return report.Render(stdout, p, s.format)
}
