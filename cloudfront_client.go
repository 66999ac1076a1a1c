package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

// CFInvalidator abstracts the CloudFront invalidation call for testability.
type CFInvalidator interface {
	// CreateInvalidation submits one invalidation batch for the given
	// distribution and returns the invalidation id assigned by CloudFront.
	CreateInvalidation(ctx context.Context, distributionID string, paths []string, callerRef string) (string, error)
}

// CFInvalidatorSDK implements CFInvalidator using the AWS SDK v2.
type CFInvalidatorSDK struct {
	client *cloudfront.Client
}

// NewCFInvalidator creates a CFInvalidator backed by the AWS SDK v2.
func NewCFInvalidator(cfg aws.Config) *CFInvalidatorSDK {
	return &CFInvalidatorSDK{client: cloudfront.NewFromConfig(cfg)}
}

// CreateInvalidation implements CFInvalidator.CreateInvalidation.
func (c *CFInvalidatorSDK) CreateInvalidation(ctx context.Context, distributionID string, paths []string, callerRef string) (string, error) {
	items := make([]string, len(paths))
	copy(items, paths)

	out, err := c.client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &cftypes.InvalidationBatch{
			CallerReference: aws.String(callerRef),
			Paths: &cftypes.Paths{
				Quantity: aws.Int32(int32(len(items))),
				Items:    items,
			},
		},
	})
	if err != nil {
		return "", err
	}

	id := ""
	if out.Invalidation != nil && out.Invalidation.Id != nil {
		id = *out.Invalidation.Id
	}
	return id, nil
}
