package catalog

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
)

// UnknownAsset is the display name used when a request carries no listing name
const UnknownAsset = "Unknown asset"

// SubscriptionRequest is a read-only view of a DataZone subscription request.
// The record is owned by the catalog service; only its status is transitioned
// remotely via Accept.
type SubscriptionRequest struct {
	ID            string
	AssetName     string
	RequestReason string
	RequestedBy   string
}

// fromSummary projects the SDK summary onto the local view. The asset name
// comes from the first subscribed listing; requests without one keep the
// UnknownAsset placeholder.
func fromSummary(s types.SubscriptionRequestSummary) SubscriptionRequest {
	req := SubscriptionRequest{
		ID:            aws.ToString(s.Id),
		AssetName:     UnknownAsset,
		RequestReason: aws.ToString(s.RequestReason),
		RequestedBy:   aws.ToString(s.CreatedBy),
	}

	if len(s.SubscribedListings) > 0 {
		if name := aws.ToString(s.SubscribedListings[0].Name); name != "" {
			req.AssetName = name
		}
	}

	return req
}
