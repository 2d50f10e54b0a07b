package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	pkgtypes "github.com/hoanm/devrig/pkg/types"
)

// Tag key the cluster autoscaler uses for auto-discovery. Groups carrying
// it are the ones the autoscaler under development will manage.
const autoscalerTagKey = "k8s.io/cluster-autoscaler/enabled"

// ListAutoscalerGroups returns the Auto Scaling Groups tagged for
// cluster-autoscaler auto-discovery.
func (c *Client) ListAutoscalerGroups(ctx context.Context) ([]pkgtypes.AutoScalingGroup, error) {
	var groups []pkgtypes.AutoScalingGroup

	paginator := autoscaling.NewDescribeAutoScalingGroupsPaginator(c.ASG, &autoscaling.DescribeAutoScalingGroupsInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe auto scaling groups: %w", err)
		}

		for _, g := range page.AutoScalingGroups {
			asg := toAutoScalingGroup(g)
			if _, ok := asg.Tags[autoscalerTagKey]; !ok {
				continue
			}
			groups = append(groups, asg)
		}
	}

	return groups, nil
}

// toAutoScalingGroup converts an SDK group to our AutoScalingGroup type
func toAutoScalingGroup(g asgtypes.AutoScalingGroup) pkgtypes.AutoScalingGroup {
	asg := pkgtypes.AutoScalingGroup{
		Name:          deref(g.AutoScalingGroupName),
		ARN:           deref(g.AutoScalingGroupARN),
		InstanceCount: len(g.Instances),
		AZs:           g.AvailabilityZones,
		Tags:          make(map[string]string),
	}

	if g.DesiredCapacity != nil {
		asg.DesiredCapacity = int(*g.DesiredCapacity)
	}
	if g.MinSize != nil {
		asg.MinSize = int(*g.MinSize)
	}
	if g.MaxSize != nil {
		asg.MaxSize = int(*g.MaxSize)
	}
	if g.CreatedTime != nil {
		asg.CreatedTime = *g.CreatedTime
	}

	for _, tag := range g.Tags {
		asg.Tags[deref(tag.Key)] = deref(tag.Value)
	}

	return asg
}
