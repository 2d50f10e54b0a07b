package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// DefaultVPC returns the ID of the account's default VPC in the region.
func (c *Client) DefaultVPC(ctx context.Context) (string, error) {
	output, err := c.EC2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("is-default"),
				Values: []string{"true"},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe VPCs: %w", err)
	}

	if len(output.Vpcs) == 0 {
		return "", fmt.Errorf("no default VPC in this region, pass --vpc-id")
	}

	return deref(output.Vpcs[0].VpcId), nil
}

// CreateSecurityGroup creates the rig security group with SSH ingress
// from the given CIDR and returns its ID.
func (c *Client) CreateSecurityGroup(ctx context.Context, rig, groupName, vpcID, sshCIDR string) (string, error) {
	created, err := c.EC2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:         aws.String(groupName),
		Description:       aws.String("devrig SSH access"),
		VpcId:             aws.String(vpcID),
		TagSpecifications: rigTagSpec(ec2types.ResourceTypeSecurityGroup, rig, groupName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create security group %q: %w", groupName, err)
	}

	groupID := deref(created.GroupId)

	_, err = c.EC2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId: aws.String(groupID),
		IpPermissions: []ec2types.IpPermission{
			{
				IpProtocol: aws.String("tcp"),
				FromPort:   aws.Int32(22),
				ToPort:     aws.Int32(22),
				IpRanges: []ec2types.IpRange{
					{
						CidrIp:      aws.String(sshCIDR),
						Description: aws.String("devrig ssh"),
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to authorize SSH ingress on %q: %w", groupID, err)
	}

	return groupID, nil
}

// FindRigSecurityGroups returns the IDs of security groups tagged with
// the rig name. Used when teardown runs without a state file.
func (c *Client) FindRigSecurityGroups(ctx context.Context, rig string) ([]string, error) {
	output, err := c.EC2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag:" + RigTagKey),
				Values: []string{rig},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe security groups: %w", err)
	}

	var ids []string
	for _, group := range output.SecurityGroups {
		ids = append(ids, deref(group.GroupId))
	}

	return ids, nil
}

// DeleteSecurityGroup deletes a security group by ID.
func (c *Client) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	_, err := c.EC2.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupID),
	})
	return err
}
