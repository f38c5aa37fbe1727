package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
)

// API is the subset of the DataZone client used by this package
type API interface {
	ListSubscriptionRequests(ctx context.Context, params *datazone.ListSubscriptionRequestsInput, optFns ...func(*datazone.Options)) (*datazone.ListSubscriptionRequestsOutput, error)
	AcceptSubscriptionRequest(ctx context.Context, params *datazone.AcceptSubscriptionRequestInput, optFns ...func(*datazone.Options)) (*datazone.AcceptSubscriptionRequestOutput, error)
}

// Options configures a Client
type Options struct {
	PageSize      int32         // list page size, 1-50
	RetryAttempts uint          // total attempts per remote call, minimum 1
	RetryDelay    time.Duration // base delay between attempts
}

// Client wraps the DataZone API for listing and approving subscription requests
type Client struct {
	api  API
	opts Options
}

// NewClient creates a new catalog client
func NewClient(api API, opts Options) *Client {
	if opts.PageSize < 1 {
		opts.PageSize = 50
	}
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}

	return &Client{
		api:  api,
		opts: opts,
	}
}

// ListPending returns all PENDING subscription requests for the domain that
// the given approver project can decide on, following the continuation token
// until the service reports none remaining. Items are returned in service
// order. An empty slice with a nil error means there is genuinely nothing
// pending; a non-nil error means the listing itself failed.
func (c *Client) ListPending(ctx context.Context, domainID, approverProjectID string) ([]SubscriptionRequest, error) {
	var requests []SubscriptionRequest
	var nextToken *string

	for {
		input := &datazone.ListSubscriptionRequestsInput{
			DomainIdentifier:  aws.String(domainID),
			Status:            types.SubscriptionRequestStatusPending,
			ApproverProjectId: aws.String(approverProjectID),
			MaxResults:        aws.Int32(c.opts.PageSize),
			NextToken:         nextToken,
		}

		var out *datazone.ListSubscriptionRequestsOutput
		err := c.do(ctx, func() error {
			var callErr error
			out, callErr = c.api.ListSubscriptionRequests(ctx, input)
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list subscription requests: %w", err)
		}

		for _, item := range out.Items {
			requests = append(requests, fromSummary(item))
		}

		nextToken = out.NextToken
		if nextToken == nil {
			break
		}
	}

	return requests, nil
}

// Accept approves a subscription request with the given decision comment
func (c *Client) Accept(ctx context.Context, domainID, requestID, decisionComment string) error {
	input := &datazone.AcceptSubscriptionRequestInput{
		DomainIdentifier: aws.String(domainID),
		Identifier:       aws.String(requestID),
		DecisionComment:  aws.String(decisionComment),
	}

	err := c.do(ctx, func() error {
		_, callErr := c.api.AcceptSubscriptionRequest(ctx, input)
		return callErr
	})
	if err != nil {
		return fmt.Errorf("failed to accept subscription request %s: %w", requestID, err)
	}

	return nil
}

// do runs fn with the configured retry budget. A single attempt reproduces
// the original one-shot call semantics.
func (c *Client) do(ctx context.Context, fn func() error) error {
	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(c.opts.RetryAttempts),
		retry.Delay(c.opts.RetryDelay),
	)

	return r.Do(fn)
}
