package handler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/harun/dzapprove/pkg/sweep"
)

type stubRunner struct {
	report sweep.Report
	calls  int
	panics bool
}

func (s *stubRunner) Run(_ context.Context) sweep.Report {
	s.calls++
	if s.panics {
		panic("broken configuration")
	}
	return s.report
}

func TestHandle(t *testing.T) {
	t.Run("runs one sweep and returns nil", func(t *testing.T) {
		runner := &stubRunner{report: sweep.Report{Listed: 2, Approved: 2}}
		h := New(runner, zerolog.Nop())

		err := h.Handle(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("returns nil even when listing failed", func(t *testing.T) {
		runner := &stubRunner{report: sweep.Report{ListFailed: true}}
		h := New(runner, zerolog.Nop())

		err := h.Handle(context.Background(), nil)
		assert.NoError(t, err)
	})

	t.Run("recovers from panic and returns nil", func(t *testing.T) {
		runner := &stubRunner{panics: true}
		h := New(runner, zerolog.Nop())

		err := h.Handle(context.Background(), nil)
		assert.NoError(t, err)
	})
}
