package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client wraps the AWS SDK clients used by devrig
type Client struct {
	EC2     *ec2.Client
	IAM     *iam.Client
	STS     *sts.Client
	SSM     *ssm.Client
	EKS     *eks.Client
	S3      *s3.Client
	ECR     *ecr.Client
	Pricing *pricing.Client
	Secrets *secretsmanager.Client
	ASG     *autoscaling.Client

	profile string
	region  string
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the AWS profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// NewClient creates a new AWS Client with the given options
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	var configOpts []func(*config.LoadOptions) error

	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}

	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	c.EC2 = ec2.NewFromConfig(cfg)
	c.IAM = iam.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)
	c.SSM = ssm.NewFromConfig(cfg)
	c.EKS = eks.NewFromConfig(cfg)
	c.S3 = s3.NewFromConfig(cfg)
	c.ECR = ecr.NewFromConfig(cfg)
	c.Secrets = secretsmanager.NewFromConfig(cfg)
	c.ASG = autoscaling.NewFromConfig(cfg)

	// The pricing API is only served out of us-east-1
	c.Pricing = pricing.NewFromConfig(cfg, func(o *pricing.Options) {
		o.Region = "us-east-1"
	})

	return c, nil
}

// Region returns the region the client was configured with
func (c *Client) Region() string {
	return c.region
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
