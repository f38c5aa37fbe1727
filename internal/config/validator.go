package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

var topicARNPattern = regexp.MustCompile(`^arn:aws[a-z0-9-]*:sns:[a-z0-9-]+:\d{12}:\S+$`)

// Validate checks the configuration for values that would make every remote
// call fail. Placeholder defaults are allowed; the service degrades to
// logged errors, matching the original deployment behavior.
func (c *Config) Validate() error {
	if c.Catalog.DomainID == "" {
		return fmt.Errorf("catalog domain_id cannot be empty")
	}
	if c.Catalog.ProjectID == "" {
		return fmt.Errorf("catalog project_id cannot be empty")
	}
	if c.Catalog.PageSize < 1 || c.Catalog.PageSize > 50 {
		return fmt.Errorf("catalog page_size must be between 1 and 50, got %d", c.Catalog.PageSize)
	}
	if c.Notify.TopicARN == "" {
		return fmt.Errorf("notify topic_arn cannot be empty")
	}
	if c.Notify.TopicARN != PlaceholderTopicARN && !topicARNPattern.MatchString(c.Notify.TopicARN) {
		return fmt.Errorf("notify topic_arn is not a valid SNS topic ARN")
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return validateSchedule(c.Daemon.Schedule)
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

func validateSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("daemon schedule cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid daemon schedule: %w", err)
	}
	return nil
}
