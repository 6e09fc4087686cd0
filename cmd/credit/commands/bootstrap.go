package commands

import (
	"fmt"
	"os"

	"github.com/wonny/creditlens/internal/assessment"
	"github.com/wonny/creditlens/internal/ingest"
	"github.com/wonny/creditlens/internal/scoring"
	"github.com/wonny/creditlens/pkg/config"
	"github.com/wonny/creditlens/pkg/httputil"
	"github.com/wonny/creditlens/pkg/logger"
)

// loadConfig applies the global flags on top of the environment
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if scoringConfig != "" {
		cfg.Scoring.ConfigPath = scoringConfig
	}
	return cfg, nil
}

// cliLogger keeps stdout for results
func cliLogger(cfg *config.Config) *logger.Logger {
	return logger.NewWithWriter(os.Stderr, cfg.LogFormat, cfg.LogLevel, cfg.Env)
}

// newService wires the scoring tables and the assessment pipeline
func newService(cfg *config.Config, log *logger.Logger) (*assessment.Service, error) {
	tables := scoring.DefaultConfig()
	if cfg.Scoring.ConfigPath != "" {
		var err error
		if tables, err = scoring.LoadConfig(cfg.Scoring.ConfigPath); err != nil {
			return nil, err
		}
		log.WithField("path", cfg.Scoring.ConfigPath).Info("Loaded scoring config")
	}

	scorer, err := scoring.NewEngine(tables, log)
	if err != nil {
		return nil, err
	}

	return assessment.NewService(scorer, assessment.Options{
		CacheEnabled: cfg.Cache.Enabled,
		CacheTTL:     cfg.Cache.TTL,
	}, log)
}

// newSource reads local files or http(s) URLs
func newSource(cfg *config.Config, log *logger.Logger) *ingest.Source {
	return ingest.NewSource(httputil.New(cfg, log))
}
