package config

import (
	"time"
)

// Config represents the main dzapprove configuration
type Config struct {
	// Catalog holds the DataZone scope and approval settings
	Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`

	// Notify holds the SNS notification settings
	Notify NotifyConfig `json:"notify" mapstructure:"notify"`

	// Retry holds remote call retry settings
	Retry RetryConfig `json:"retry" mapstructure:"retry"`

	// Daemon holds standalone daemon settings
	Daemon DaemonConfig `json:"daemon" mapstructure:"daemon"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Data directory (PID file, local state)
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// CatalogConfig holds the DataZone domain scope and approval behavior
type CatalogConfig struct {
	DomainID        string `json:"domain_id" mapstructure:"domain_id"`
	ProjectID       string `json:"project_id" mapstructure:"project_id"` // approver project
	PageSize        int32  `json:"page_size" mapstructure:"page_size"`   // list page size, 1-50
	DecisionComment string `json:"decision_comment" mapstructure:"decision_comment"`
}

// NotifyConfig holds the SNS topic and message settings
type NotifyConfig struct {
	TopicARN string `json:"topic_arn" mapstructure:"topic_arn"`
	Subject  string `json:"subject" mapstructure:"subject"`
	Message  string `json:"message" mapstructure:"message"`
}

// RetryConfig controls retries around each remote call.
// Attempts of 1 means a single try with no retry.
type RetryConfig struct {
	Attempts uint          `json:"attempts" mapstructure:"attempts"`
	Delay    time.Duration `json:"delay" mapstructure:"delay"`
}

// DaemonConfig holds settings for the standalone daemon mode
type DaemonConfig struct {
	Schedule   string `json:"schedule" mapstructure:"schedule"`       // cron expression or @every duration
	ListenAddr string `json:"listen_addr" mapstructure:"listen_addr"` // metrics/health HTTP listener
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"` // debug, info, warn, error
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// Placeholder defaults match the original Lambda deployment, which expected
// operators to set DOMAIN_ID, PROJECT_ID and SNS_TOPIC_ARN in the environment.
const (
	PlaceholderDomainID  = "enter domain"
	PlaceholderProjectID = "enter owning project"
	PlaceholderTopicARN  = "ARN of SNS topic"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			DomainID:        PlaceholderDomainID,
			ProjectID:       PlaceholderProjectID,
			PageSize:        50,
			DecisionComment: "Subscription request is auto-approved by Lambda",
		},
		Notify: NotifyConfig{
			TopicARN: PlaceholderTopicARN,
			Subject:  "Subscription Request is auto-approved by Lambda",
			Message:  "Your subscription request has been auto-approved by Lambda. You can now access this asset.",
		},
		Retry: RetryConfig{
			Attempts: 1,
			Delay:    500 * time.Millisecond,
		},
		Daemon: DaemonConfig{
			Schedule:   "@every 5m",
			ListenAddr: ":9464",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}
