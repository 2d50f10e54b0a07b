package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

// DeleteUser removes an IAM user together with everything that blocks
// user deletion: access keys, attached managed policies and inline
// policies.
func (c *Client) DeleteUser(ctx context.Context, userName string) error {
	keys, err := c.IAM.ListAccessKeys(ctx, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return err
	}

	for _, key := range keys.AccessKeyMetadata {
		_, err := c.IAM.DeleteAccessKey(ctx, &iam.DeleteAccessKeyInput{
			UserName:    aws.String(userName),
			AccessKeyId: key.AccessKeyId,
		})
		if err != nil {
			return fmt.Errorf("failed to delete access key %q: %w", deref(key.AccessKeyId), err)
		}
	}

	attached, err := c.IAM.ListAttachedUserPolicies(ctx, &iam.ListAttachedUserPoliciesInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return err
	}

	for _, policy := range attached.AttachedPolicies {
		_, err := c.IAM.DetachUserPolicy(ctx, &iam.DetachUserPolicyInput{
			UserName:  aws.String(userName),
			PolicyArn: policy.PolicyArn,
		})
		if err != nil {
			return fmt.Errorf("failed to detach policy %q: %w", deref(policy.PolicyArn), err)
		}
	}

	inline, err := c.IAM.ListUserPolicies(ctx, &iam.ListUserPoliciesInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return err
	}

	for _, name := range inline.PolicyNames {
		_, err := c.IAM.DeleteUserPolicy(ctx, &iam.DeleteUserPolicyInput{
			UserName:   aws.String(userName),
			PolicyName: aws.String(name),
		})
		if err != nil {
			return fmt.Errorf("failed to delete inline policy %q: %w", name, err)
		}
	}

	_, err = c.IAM.DeleteUser(ctx, &iam.DeleteUserInput{UserName: aws.String(userName)})
	return err
}
