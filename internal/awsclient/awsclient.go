// Package awsclient builds the AWS service clients shared by the CLI and
// Lambda entrypoints. Credentials come from the ambient execution
// environment (Lambda role, instance profile, or local AWS config).
package awsclient

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/harun/dzapprove/internal/config"
	"github.com/harun/dzapprove/pkg/catalog"
	"github.com/harun/dzapprove/pkg/notify"
)

// Build creates the catalog client and notification publisher from the
// application configuration
func Build(ctx context.Context, cfg *config.Config) (*catalog.Client, *notify.Publisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	cat := catalog.NewClient(datazone.NewFromConfig(awsCfg), catalog.Options{
		PageSize:      cfg.Catalog.PageSize,
		RetryAttempts: cfg.Retry.Attempts,
		RetryDelay:    cfg.Retry.Delay,
	})

	pub := notify.NewPublisher(sns.NewFromConfig(awsCfg), notify.Options{
		TopicARN:      cfg.Notify.TopicARN,
		RetryAttempts: cfg.Retry.Attempts,
		RetryDelay:    cfg.Retry.Delay,
	})

	return cat, pub, nil
}
