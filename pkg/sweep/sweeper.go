package sweep

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harun/dzapprove/internal/metrics"
	"github.com/harun/dzapprove/pkg/catalog"
)

// Catalog lists and approves subscription requests
type Catalog interface {
	ListPending(ctx context.Context, domainID, approverProjectID string) ([]catalog.SubscriptionRequest, error)
	Accept(ctx context.Context, domainID, requestID, decisionComment string) error
}

// Notifier publishes approval notifications
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}

// Runner executes one approval sweep
type Runner interface {
	Run(ctx context.Context) Report
}

// Options configures a Sweeper
type Options struct {
	DomainID        string
	ProjectID       string
	DecisionComment string
	Subject         string
	Message         string
	DryRun          bool // list and log only, no approve or publish
}

// Report summarizes a single sweep. It feeds logs and metrics only; the
// sweep itself never fails outward.
type Report struct {
	SweepID    string
	Listed     int
	Approved   int
	Notified   int
	Skipped    int
	Failed     int
	ListFailed bool
	Duration   time.Duration
}

// Sweeper lists pending subscription requests and approves each one
type Sweeper struct {
	catalog  Catalog
	notifier Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	opts     Options
}

// NewSweeper creates a new sweeper
func NewSweeper(cat Catalog, notifier Notifier, m *metrics.Metrics, logger zerolog.Logger, opts Options) *Sweeper {
	return &Sweeper{
		catalog:  cat,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes one sweep: list all pending requests, then approve and notify
// each in order. Failures are recovered at the lowest level; a listing
// failure yields an empty batch, a per-request failure never stops the rest
// of the batch.
func (s *Sweeper) Run(ctx context.Context) Report {
	start := time.Now()
	report := Report{SweepID: uuid.New().String()}
	log := s.logger.With().Str("sweep_id", report.SweepID).Logger()

	s.metrics.SweepsTotal.Inc()

	requests, err := s.catalog.ListPending(ctx, s.opts.DomainID, s.opts.ProjectID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list pending subscription requests")
		s.metrics.SweepErrorsTotal.Inc()
		report.ListFailed = true
		report.Duration = time.Since(start)
		s.metrics.SweepDuration.Observe(report.Duration.Seconds())
		return report
	}

	report.Listed = len(requests)
	s.metrics.RequestsPending.Set(float64(len(requests)))

	if len(requests) == 0 {
		log.Info().Msg("No pending subscription requests found")
		report.Duration = time.Since(start)
		s.metrics.SweepDuration.Observe(report.Duration.Seconds())
		return report
	}

	log.Info().Int("count", len(requests)).Msg("Found pending subscription requests")

	for _, req := range requests {
		s.approveAndNotify(ctx, log, req, &report)
	}

	report.Duration = time.Since(start)
	s.metrics.SweepDuration.Observe(report.Duration.Seconds())

	log.Info().
		Int("listed", report.Listed).
		Int("approved", report.Approved).
		Int("notified", report.Notified).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Dur("duration", report.Duration).
		Msg("Sweep complete")

	return report
}

// approveAndNotify approves a single request and publishes the notification.
// Requests without an identifier are skipped silently. A publish failure
// after a successful approval is logged but not compensated; the request
// stays approved.
func (s *Sweeper) approveAndNotify(ctx context.Context, log zerolog.Logger, req catalog.SubscriptionRequest, report *Report) {
	if req.ID == "" {
		report.Skipped++
		s.metrics.RequestsSkippedTotal.Inc()
		return
	}

	if s.opts.DryRun {
		log.Info().Str("request_id", req.ID).Str("asset", req.AssetName).Msg("Dry run: would approve subscription request")
		return
	}

	if err := s.catalog.Accept(ctx, s.opts.DomainID, req.ID, s.opts.DecisionComment); err != nil {
		log.Error().Err(err).Str("request_id", req.ID).Msg("Failed to approve subscription request")
		s.metrics.ApprovalsTotal.WithLabelValues("failure").Inc()
		report.Failed++
		return
	}

	s.metrics.ApprovalsTotal.WithLabelValues("success").Inc()
	report.Approved++

	if err := s.notifier.Publish(ctx, s.opts.Subject, s.opts.Message); err != nil {
		// The request stays approved; there is no compensating call.
		log.Error().Err(err).Str("request_id", req.ID).Msg("Failed to publish approval notification")
		s.metrics.NotificationsTotal.WithLabelValues("failure").Inc()
		return
	}

	s.metrics.NotificationsTotal.WithLabelValues("success").Inc()
	report.Notified++

	log.Info().Str("request_id", req.ID).Str("asset", req.AssetName).Msg("Approved subscription request")
}
