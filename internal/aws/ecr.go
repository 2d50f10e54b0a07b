package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

// DeleteRepository force-deletes an ECR repository, images included.
func (c *Client) DeleteRepository(ctx context.Context, repoName string) error {
	_, err := c.ECR.DeleteRepository(ctx, &ecr.DeleteRepositoryInput{
		RepositoryName: aws.String(repoName),
		Force:          true,
	})
	return err
}
