package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// ec2TrustPolicy allows EC2 instances to assume the rig role.
const ec2TrustPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": { "Service": "ec2.amazonaws.com" },
      "Action": "sts:AssumeRole"
    }
  ]
}`

// EnsureRole creates the rig IAM role if it does not exist and attaches
// the given managed policies. Safe to call repeatedly.
func (c *Client) EnsureRole(ctx context.Context, rig, roleName string, policyArns []string) (string, error) {
	var roleArn string

	out, err := c.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	switch {
	case err == nil:
		roleArn = deref(out.Role.Arn)
	case IsNotFound(err):
		created, err := c.IAM.CreateRole(ctx, &iam.CreateRoleInput{
			RoleName:                 aws.String(roleName),
			AssumeRolePolicyDocument: aws.String(ec2TrustPolicy),
			Description:              aws.String("devrig dev instance role"),
			Tags:                     rigIAMTags(rig),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create role %q: %w", roleName, err)
		}
		roleArn = deref(created.Role.Arn)
	default:
		return "", fmt.Errorf("failed to get role %q: %w", roleName, err)
	}

	// AttachRolePolicy is idempotent, no need to diff against the
	// currently attached set
	for _, arn := range policyArns {
		_, err := c.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(arn),
		})
		if err != nil {
			return "", fmt.Errorf("failed to attach policy %q to role %q: %w", arn, roleName, err)
		}
	}

	return roleArn, nil
}

// EnsureInstanceProfile creates the instance profile if missing and adds
// the role to it.
func (c *Client) EnsureInstanceProfile(ctx context.Context, rig, profileName, roleName string) error {
	var profile *iamtypes.InstanceProfile

	out, err := c.IAM.GetInstanceProfile(ctx, &iam.GetInstanceProfileInput{
		InstanceProfileName: aws.String(profileName),
	})
	switch {
	case err == nil:
		profile = out.InstanceProfile
	case IsNotFound(err):
		created, err := c.IAM.CreateInstanceProfile(ctx, &iam.CreateInstanceProfileInput{
			InstanceProfileName: aws.String(profileName),
			Tags:                rigIAMTags(rig),
		})
		if err != nil {
			return fmt.Errorf("failed to create instance profile %q: %w", profileName, err)
		}
		profile = created.InstanceProfile
	default:
		return fmt.Errorf("failed to get instance profile %q: %w", profileName, err)
	}

	for _, role := range profile.Roles {
		if deref(role.RoleName) == roleName {
			return nil
		}
	}

	_, err = c.IAM.AddRoleToInstanceProfile(ctx, &iam.AddRoleToInstanceProfileInput{
		InstanceProfileName: aws.String(profileName),
		RoleName:            aws.String(roleName),
	})
	if err != nil {
		return fmt.Errorf("failed to add role to instance profile: %w", err)
	}

	return nil
}

// DeleteInstanceProfile removes all roles from the profile and deletes
// it. Profiles that do not carry the rig ownership tag are refused.
func (c *Client) DeleteInstanceProfile(ctx context.Context, rig, profileName string) error {
	out, err := c.IAM.GetInstanceProfile(ctx, &iam.GetInstanceProfileInput{
		InstanceProfileName: aws.String(profileName),
	})
	if err != nil {
		return err
	}
	if !hasRigTag(rig, out.InstanceProfile.Tags) {
		return fmt.Errorf("instance profile %q is not tagged %s=%s, refusing to delete", profileName, RigTagKey, rig)
	}

	// roles must be removed before the profile can be deleted
	for _, role := range out.InstanceProfile.Roles {
		_, err := c.IAM.RemoveRoleFromInstanceProfile(ctx, &iam.RemoveRoleFromInstanceProfileInput{
			InstanceProfileName: aws.String(profileName),
			RoleName:            role.RoleName,
		})
		if err != nil {
			return fmt.Errorf("failed to remove role %q from instance profile: %w", deref(role.RoleName), err)
		}
	}

	_, err = c.IAM.DeleteInstanceProfile(ctx, &iam.DeleteInstanceProfileInput{
		InstanceProfileName: aws.String(profileName),
	})
	return err
}

// DeleteRole detaches all managed policies from the role and deletes
// it. Roles that do not carry the rig ownership tag are refused.
func (c *Client) DeleteRole(ctx context.Context, rig, roleName string) error {
	role, err := c.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err != nil {
		return err
	}
	if !hasRigTag(rig, role.Role.Tags) {
		return fmt.Errorf("role %q is not tagged %s=%s, refusing to delete", roleName, RigTagKey, rig)
	}

	attached, err := c.IAM.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return err
	}

	for _, policy := range attached.AttachedPolicies {
		_, err := c.IAM.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: policy.PolicyArn,
		})
		if err != nil {
			return fmt.Errorf("failed to detach policy %q: %w", deref(policy.PolicyArn), err)
		}
	}

	_, err = c.IAM.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(roleName)})
	return err
}
