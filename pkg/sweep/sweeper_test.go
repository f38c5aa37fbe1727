package sweep

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/dzapprove/internal/metrics"
	"github.com/harun/dzapprove/pkg/catalog"
)

// fakeCatalog records calls in order so approve-before-publish can be checked
type fakeCatalog struct {
	requests  []catalog.SubscriptionRequest
	listErr   error
	acceptErr map[string]error // per request id
	trace     *[]string
	accepted  []string
	comments  []string
	domains   []string
}

func (f *fakeCatalog) ListPending(_ context.Context, domainID, projectID string) ([]catalog.SubscriptionRequest, error) {
	*f.trace = append(*f.trace, fmt.Sprintf("list %s %s", domainID, projectID))
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.requests, nil
}

func (f *fakeCatalog) Accept(_ context.Context, domainID, requestID, decisionComment string) error {
	*f.trace = append(*f.trace, "accept "+requestID)
	if err := f.acceptErr[requestID]; err != nil {
		return err
	}
	f.accepted = append(f.accepted, requestID)
	f.comments = append(f.comments, decisionComment)
	f.domains = append(f.domains, domainID)
	return nil
}

type fakeNotifier struct {
	trace    *[]string
	err      error
	subjects []string
	messages []string
}

func (f *fakeNotifier) Publish(_ context.Context, subject, message string) error {
	*f.trace = append(*f.trace, "publish")
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.messages = append(f.messages, message)
	return nil
}

func newTestSweeper(cat *fakeCatalog, notifier *fakeNotifier, opts Options) *Sweeper {
	trace := []string{}
	cat.trace = &trace
	notifier.trace = &trace

	if opts.DomainID == "" {
		opts.DomainID = "dzd_123"
	}
	if opts.ProjectID == "" {
		opts.ProjectID = "proj_abc"
	}
	if opts.DecisionComment == "" {
		opts.DecisionComment = "Subscription request is auto-approved by Lambda"
	}
	if opts.Subject == "" {
		opts.Subject = "Subscription Request is auto-approved by Lambda"
	}
	if opts.Message == "" {
		opts.Message = "Your subscription request has been auto-approved by Lambda. You can now access this asset."
	}

	return NewSweeper(cat, notifier, metrics.NewMetrics(), zerolog.Nop(), opts)
}

func TestRun(t *testing.T) {
	t.Run("approves and notifies every listed request", func(t *testing.T) {
		cat := &fakeCatalog{requests: []catalog.SubscriptionRequest{
			{ID: "req-1", AssetName: "SalesData"},
			{ID: "req-2", AssetName: ""},
		}}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{})

		report := s.Run(context.Background())

		assert.Equal(t, 2, report.Listed)
		assert.Equal(t, 2, report.Approved)
		assert.Equal(t, 2, report.Notified)
		assert.Equal(t, 0, report.Skipped)
		assert.Equal(t, 0, report.Failed)
		assert.False(t, report.ListFailed)
		assert.NotEmpty(t, report.SweepID)

		require.Equal(t, []string{"req-1", "req-2"}, cat.accepted)
		for _, comment := range cat.comments {
			assert.Equal(t, "Subscription request is auto-approved by Lambda", comment)
		}
		for _, domain := range cat.domains {
			assert.Equal(t, "dzd_123", domain)
		}

		require.Len(t, notifier.subjects, 2)
		for _, subject := range notifier.subjects {
			assert.Contains(t, subject, "auto-approved")
		}
		// The outward message deliberately omits the asset name
		for _, message := range notifier.messages {
			assert.NotContains(t, message, "SalesData")
		}
	})

	t.Run("approve happens before publish for each request", func(t *testing.T) {
		cat := &fakeCatalog{requests: []catalog.SubscriptionRequest{
			{ID: "req-1"},
			{ID: "req-2"},
		}}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{})

		s.Run(context.Background())

		assert.Equal(t, []string{
			"list dzd_123 proj_abc",
			"accept req-1",
			"publish",
			"accept req-2",
			"publish",
		}, *cat.trace)
	})

	t.Run("empty batch completes without calls", func(t *testing.T) {
		cat := &fakeCatalog{}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{})

		report := s.Run(context.Background())

		assert.Equal(t, 0, report.Listed)
		assert.Equal(t, []string{"list dzd_123 proj_abc"}, *cat.trace)
	})

	t.Run("listing failure yields empty batch and no raise", func(t *testing.T) {
		cat := &fakeCatalog{listErr: errors.New("connection reset")}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{})

		report := s.Run(context.Background())

		assert.True(t, report.ListFailed)
		assert.Equal(t, 0, report.Listed)
		assert.Equal(t, 0, report.Approved)
		assert.Equal(t, []string{"list dzd_123 proj_abc"}, *cat.trace)
	})

	t.Run("request without identifier is skipped silently", func(t *testing.T) {
		cat := &fakeCatalog{requests: []catalog.SubscriptionRequest{
			{ID: "", AssetName: "Orphan"},
			{ID: "req-2"},
		}}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{})

		report := s.Run(context.Background())

		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, 1, report.Approved)
		assert.Equal(t, []string{"req-2"}, cat.accepted)
		assert.Len(t, notifier.subjects, 1)
	})

	t.Run("approve failure skips publish and continues", func(t *testing.T) {
		cat := &fakeCatalog{
			requests: []catalog.SubscriptionRequest{
				{ID: "req-1"},
				{ID: "req-2"},
			},
			acceptErr: map[string]error{"req-1": errors.New("access denied")},
		}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{})

		report := s.Run(context.Background())

		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 1, report.Approved)
		assert.Equal(t, []string{
			"list dzd_123 proj_abc",
			"accept req-1",
			"accept req-2",
			"publish",
		}, *cat.trace)
	})

	t.Run("publish failure keeps request approved and continues", func(t *testing.T) {
		cat := &fakeCatalog{requests: []catalog.SubscriptionRequest{
			{ID: "req-1"},
			{ID: "req-2"},
		}}
		notifier := &fakeNotifier{err: errors.New("topic gone")}
		s := newTestSweeper(cat, notifier, Options{})

		report := s.Run(context.Background())

		assert.Equal(t, 2, report.Approved)
		assert.Equal(t, 0, report.Notified)
		assert.Equal(t, 0, report.Failed)
		assert.Equal(t, []string{"req-1", "req-2"}, cat.accepted)
	})

	t.Run("dry run neither approves nor publishes", func(t *testing.T) {
		cat := &fakeCatalog{requests: []catalog.SubscriptionRequest{{ID: "req-1"}}}
		notifier := &fakeNotifier{}
		s := newTestSweeper(cat, notifier, Options{DryRun: true})

		report := s.Run(context.Background())

		assert.Equal(t, 1, report.Listed)
		assert.Equal(t, 0, report.Approved)
		assert.Empty(t, cat.accepted)
		assert.Equal(t, []string{"list dzd_123 proj_abc"}, *cat.trace)
	})
}
