package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
)

const (
	nodegroupDeleteTimeout = 15 * time.Minute
	clusterDeleteTimeout   = 20 * time.Minute
)

// DeleteEKSCluster deletes an EKS cluster. Nodegroups must go first, and
// each deletion is waited on because the cluster delete is rejected while
// any nodegroup still exists.
func (c *Client) DeleteEKSCluster(ctx context.Context, clusterName string) error {
	nodegroups, err := c.EKS.ListNodegroups(ctx, &eks.ListNodegroupsInput{
		ClusterName: aws.String(clusterName),
	})
	if err != nil {
		return err
	}

	ngWaiter := eks.NewNodegroupDeletedWaiter(c.EKS)
	for _, ng := range nodegroups.Nodegroups {
		_, err := c.EKS.DeleteNodegroup(ctx, &eks.DeleteNodegroupInput{
			ClusterName:   aws.String(clusterName),
			NodegroupName: aws.String(ng),
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete nodegroup %q: %w", ng, err)
		}

		err = ngWaiter.Wait(ctx, &eks.DescribeNodegroupInput{
			ClusterName:   aws.String(clusterName),
			NodegroupName: aws.String(ng),
		}, nodegroupDeleteTimeout)
		if err != nil {
			return fmt.Errorf("nodegroup %q was not deleted: %w", ng, err)
		}
	}

	_, err = c.EKS.DeleteCluster(ctx, &eks.DeleteClusterInput{
		Name: aws.String(clusterName),
	})
	if err != nil {
		return err
	}

	waiter := eks.NewClusterDeletedWaiter(c.EKS)
	err = waiter.Wait(ctx, &eks.DescribeClusterInput{
		Name: aws.String(clusterName),
	}, clusterDeleteTimeout)
	if err != nil {
		return fmt.Errorf("cluster %q was not deleted: %w", clusterName, err)
	}

	return nil
}
