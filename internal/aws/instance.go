package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/hoanm/devrig/pkg/types"
)

const (
	runningWaitTimeout    = 5 * time.Minute
	terminatedWaitTimeout = 10 * time.Minute
)

// LaunchInput contains parameters for launching the rig instance
type LaunchInput struct {
	Rig             string
	Name            string
	AMI             string
	InstanceType    string
	KeyName         string
	SecurityGroupID string
	InstanceProfile string
	SubnetID        string
}

// LaunchInstance launches a single EC2 instance and waits until it is
// running. Returns the instance with its addresses populated.
func (c *Client) LaunchInstance(ctx context.Context, input *LaunchInput) (*types.Instance, error) {
	runInput := &ec2.RunInstancesInput{
		ImageId:          aws.String(input.AMI),
		InstanceType:     ec2types.InstanceType(input.InstanceType),
		MinCount:         aws.Int32(1),
		MaxCount:         aws.Int32(1),
		KeyName:          aws.String(input.KeyName),
		SecurityGroupIds: []string{input.SecurityGroupID},
		IamInstanceProfile: &ec2types.IamInstanceProfileSpecification{
			Name: aws.String(input.InstanceProfile),
		},
		TagSpecifications: rigTagSpec(ec2types.ResourceTypeInstance, input.Rig, input.Name),
	}

	if input.SubnetID != "" {
		runInput.SubnetId = aws.String(input.SubnetID)
	}

	output, err := c.EC2.RunInstances(ctx, runInput)
	if err != nil {
		return nil, fmt.Errorf("failed to launch instance: %w", err)
	}

	if len(output.Instances) == 0 {
		return nil, fmt.Errorf("RunInstances returned no instances")
	}

	instanceID := deref(output.Instances[0].InstanceId)

	// Block until the instance reaches running, then re-describe it to
	// pick up the public IP
	waiter := ec2.NewInstanceRunningWaiter(c.EC2)
	describeInput := &ec2.DescribeInstancesInput{InstanceIds: []string{instanceID}}

	if err := waiter.Wait(ctx, describeInput, runningWaitTimeout); err != nil {
		return nil, fmt.Errorf("instance %s did not reach running: %w", instanceID, err)
	}

	described, err := c.EC2.DescribeInstances(ctx, describeInput)
	if err != nil {
		return nil, fmt.Errorf("failed to describe instance %s: %w", instanceID, err)
	}

	if len(described.Reservations) == 0 || len(described.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("instance %s not found after launch", instanceID)
	}

	inst := toInstance(described.Reservations[0].Instances[0])
	return &inst, nil
}

// TerminateInstance terminates the instance and waits for it to reach
// the terminated state.
func (c *Client) TerminateInstance(ctx context.Context, instanceID string) error {
	_, err := c.EC2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return err
	}

	waiter := ec2.NewInstanceTerminatedWaiter(c.EC2)
	err = waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, terminatedWaitTimeout)
	if err != nil {
		return fmt.Errorf("instance %s did not reach terminated: %w", instanceID, err)
	}

	return nil
}

// ListRigInstances returns the non-terminated instances tagged with the
// given rig name.
func (c *Client) ListRigInstances(ctx context.Context, rig string) ([]types.Instance, error) {
	output, err := c.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag:" + RigTagKey),
				Values: []string{rig},
			},
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"pending", "running", "stopping", "stopped"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	var instances []types.Instance
	for _, reservation := range output.Reservations {
		for _, inst := range reservation.Instances {
			instances = append(instances, toInstance(inst))
		}
	}

	return instances, nil
}

// toInstance converts an EC2 instance to our Instance type
func toInstance(i ec2types.Instance) types.Instance {
	inst := types.Instance{
		ID:      deref(i.InstanceId),
		Type:    string(i.InstanceType),
		KeyName: deref(i.KeyName),
	}

	if i.State != nil {
		inst.State = string(i.State.Name)
	}

	if i.PrivateIpAddress != nil {
		inst.PrivateIP = *i.PrivateIpAddress
	}

	if i.PublicIpAddress != nil {
		inst.PublicIP = *i.PublicIpAddress
	}

	if i.Placement != nil && i.Placement.AvailabilityZone != nil {
		inst.AZ = *i.Placement.AvailabilityZone
	}

	if i.LaunchTime != nil {
		inst.LaunchTime = *i.LaunchTime
	}

	for _, tag := range i.Tags {
		switch deref(tag.Key) {
		case "Name":
			inst.Name = deref(tag.Value)
		case RigTagKey:
			inst.Rig = deref(tag.Value)
		}
	}

	return inst
}
