package handler

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/harun/dzapprove/pkg/sweep"
)

// Handler adapts a sweep runner to the Lambda calling convention. The event
// payload only triggers the sweep; its contents are not inspected.
type Handler struct {
	runner sweep.Runner
	logger zerolog.Logger
}

// New creates a new handler
func New(runner sweep.Runner, logger zerolog.Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Handle runs one approval sweep. It always returns nil: every failure,
// including a panic, is logged and swallowed so the invoker observes a
// successful completion.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().Interface("panic", r).Msg("Recovered from panic during sweep")
		}
	}()

	report := h.runner.Run(ctx)

	h.logger.Info().
		Str("sweep_id", report.SweepID).
		Int("listed", report.Listed).
		Int("approved", report.Approved).
		Int("notified", report.Notified).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Bool("list_failed", report.ListFailed).
		Msg("Handler invocation complete")

	return nil
}
