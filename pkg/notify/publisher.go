package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// API is the subset of the SNS client used by this package
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Options configures a Publisher
type Options struct {
	TopicARN      string
	RetryAttempts uint
	RetryDelay    time.Duration
}

// Publisher sends approval notifications to a fixed SNS topic
type Publisher struct {
	api  API
	opts Options
}

// NewPublisher creates a new publisher
func NewPublisher(api API, opts Options) *Publisher {
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}

	return &Publisher{
		api:  api,
		opts: opts,
	}
}

// Publish sends a message with the given subject to the configured topic
func (p *Publisher) Publish(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(p.opts.TopicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(p.opts.RetryAttempts),
		retry.Delay(p.opts.RetryDelay),
	)

	err := r.Do(func() error {
		_, callErr := p.api.Publish(ctx, input)
		return callErr
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
