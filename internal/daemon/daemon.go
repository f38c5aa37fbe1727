package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/harun/dzapprove/internal/config"
	"github.com/harun/dzapprove/internal/logger"
	"github.com/harun/dzapprove/internal/metrics"
	"github.com/harun/dzapprove/pkg/sweep"
)

// Daemon runs approval sweeps on a schedule and serves metrics
type Daemon struct {
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
	runner  sweep.Runner

	cron       *cron.Cron
	httpServer *http.Server
	lifecycle  *LifecycleManager

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	running   bool
	startTime time.Time
	sweeping  atomic.Bool
}

// Status represents the daemon runtime status
type Status struct {
	Running bool
	Uptime  time.Duration
	PID     int
}

// New creates a new daemon
func New(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, runner sweep.Runner) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if runner == nil {
		return nil, fmt.Errorf("sweep runner is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &Daemon{
		config:  cfg,
		logger:  log,
		metrics: m,
		runner:  runner,
		cron:    cron.New(),
		ctx:     ctx,
		cancel:  cancel,
	}
	d.lifecycle = NewLifecycleManager(d)

	return d, nil
}

// Start starts the daemon: PID file, metrics listener, sweep schedule, and
// an immediate first sweep
func (d *Daemon) Start() error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return fmt.Errorf("daemon is already running")
	}
	d.running = true
	d.startTime = time.Now()
	d.mu.Unlock()

	log := d.logger.GetZerolog()
	log.Info().Str("schedule", d.config.Daemon.Schedule).Msg("Starting dzapprove daemon")

	// Start lifecycle manager
	if err := d.lifecycle.Start(); err != nil {
		return fmt.Errorf("failed to start lifecycle manager: %w", err)
	}

	// Start metrics listener
	if d.config.Daemon.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", d.metrics.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		d.httpServer = &http.Server{
			Addr:    d.config.Daemon.ListenAddr,
			Handler: mux,
		}

		go func() {
			if err := d.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Metrics listener failed")
			}
		}()
		log.Info().Str("addr", d.config.Daemon.ListenAddr).Msg("Metrics listener started")
	}

	// Schedule sweeps
	if _, err := d.cron.AddFunc(d.config.Daemon.Schedule, d.runSweep); err != nil {
		return fmt.Errorf("failed to schedule sweeps: %w", err)
	}
	d.cron.Start()

	// Run the first sweep immediately rather than waiting a full interval
	go d.runSweep()

	log.Info().Msg("Daemon started successfully")

	return nil
}

// Stop stops the daemon gracefully
func (d *Daemon) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("daemon is not running")
	}
	d.running = false
	d.mu.Unlock()

	log := d.logger.GetZerolog()
	log.Info().Msg("Stopping dzapprove daemon")

	// Stop scheduling and wait for an in-flight sweep to finish
	cronCtx := d.cron.Stop()
	<-cronCtx.Done()

	d.cancel()

	// Shut down the metrics listener
	if d.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to shut down metrics listener")
		}
	}

	// Stop lifecycle manager
	if err := d.lifecycle.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop lifecycle manager")
	}

	log.Info().Msg("Daemon stopped")

	return nil
}

// Wait blocks until SIGINT or SIGTERM, then stops the daemon
func (d *Daemon) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	d.logger.Info().Str("signal", sig.String()).Msg("Received signal")

	if err := d.Stop(); err != nil {
		d.logger.Error().Err(err).Msg("Failed to stop daemon")
	}
}

// Status returns the daemon runtime status
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := Status{
		Running: d.running,
		PID:     os.Getpid(),
	}
	if d.running {
		status.Uptime = time.Since(d.startTime)
	}
	return status
}

// RunOnce executes a single sweep synchronously, outside the schedule
func (d *Daemon) RunOnce(ctx context.Context) sweep.Report {
	return d.runner.Run(ctx)
}

// runSweep executes a scheduled sweep. Sweeps are serialized: a trigger
// firing while one is in flight is dropped, not queued.
func (d *Daemon) runSweep() {
	if !d.sweeping.CompareAndSwap(false, true) {
		d.logger.Warn().Msg("Previous sweep still in progress, skipping trigger")
		return
	}
	defer d.sweeping.Store(false)

	d.runner.Run(d.ctx)
}
