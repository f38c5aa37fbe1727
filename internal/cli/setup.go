package cli

import (
	"context"
	"fmt"

	"github.com/harun/dzapprove/internal/awsclient"
	"github.com/harun/dzapprove/internal/config"
	"github.com/harun/dzapprove/internal/logger"
	"github.com/harun/dzapprove/internal/metrics"
	"github.com/harun/dzapprove/pkg/sweep"
)

// setup holds everything a command needs after configuration loading
type setup struct {
	cfg     *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
	sweeper *sweep.Sweeper
}

// loadConfig loads and validates configuration, applying the --log-level
// override when given
func loadConfig() (*config.Config, error) {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newSetup wires configuration, logging, metrics, AWS clients and the sweeper
func newSetup(ctx context.Context, dryRun bool) (*setup, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cat, pub, err := awsclient.Build(ctx, cfg)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	m := metrics.NewMetrics()

	sweeper := sweep.NewSweeper(cat, pub, m, log.WithComponent("sweep"), sweep.Options{
		DomainID:        cfg.Catalog.DomainID,
		ProjectID:       cfg.Catalog.ProjectID,
		DecisionComment: cfg.Catalog.DecisionComment,
		Subject:         cfg.Notify.Subject,
		Message:         cfg.Notify.Message,
		DryRun:          dryRun,
	})

	return &setup{
		cfg:     cfg,
		logger:  log,
		metrics: m,
		sweeper: sweeper,
	}, nil
}

// close releases setup resources
func (s *setup) close() {
	if s.logger != nil {
		_ = s.logger.Close()
	}
}
