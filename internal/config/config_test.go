package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("carries legacy placeholders", func(t *testing.T) {
		cfg := DefaultConfig()

		assert.Equal(t, PlaceholderDomainID, cfg.Catalog.DomainID)
		assert.Equal(t, PlaceholderProjectID, cfg.Catalog.ProjectID)
		assert.Equal(t, PlaceholderTopicARN, cfg.Notify.TopicARN)
	})

	t.Run("carries original decision comment and subject", func(t *testing.T) {
		cfg := DefaultConfig()

		assert.Equal(t, "Subscription request is auto-approved by Lambda", cfg.Catalog.DecisionComment)
		assert.Equal(t, "Subscription Request is auto-approved by Lambda", cfg.Notify.Subject)
		assert.Contains(t, cfg.Notify.Message, "auto-approved by Lambda")
	})

	t.Run("single attempt by default", func(t *testing.T) {
		cfg := DefaultConfig()

		assert.Equal(t, uint(1), cfg.Retry.Attempts)
	})

	t.Run("is valid", func(t *testing.T) {
		cfg := DefaultConfig()

		require.NoError(t, cfg.Validate())
	})
}

func TestValidate(t *testing.T) {
	t.Run("empty domain", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Catalog.DomainID = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "domain_id")
	})

	t.Run("empty project", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Catalog.ProjectID = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "project_id")
	})

	t.Run("page size out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Catalog.PageSize = 51

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "page_size")
	})

	t.Run("valid topic ARN", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Notify.TopicARN = "arn:aws:sns:us-east-1:123456789012:approvals"

		assert.NoError(t, cfg.Validate())
	})

	t.Run("malformed topic ARN", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Notify.TopicARN = "not-an-arn"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "topic_arn")
	})

	t.Run("zero retry attempts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Retry.Attempts = 0

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "retry attempts")
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Level = "verbose"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log level")
	})

	t.Run("invalid schedule", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Daemon.Schedule = "every ten minutes"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "schedule")
	})

	t.Run("cron expression schedule", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Daemon.Schedule = "*/10 * * * *"

		assert.NoError(t, cfg.Validate())
	})
}
