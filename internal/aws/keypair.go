package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// CreateKeyPair creates an ed25519 key pair and returns the private key
// PEM. The key material is only available at creation time, so the caller
// must persist it.
func (c *Client) CreateKeyPair(ctx context.Context, rig, keyName string) (string, error) {
	output, err := c.EC2.CreateKeyPair(ctx, &ec2.CreateKeyPairInput{
		KeyName:           aws.String(keyName),
		KeyType:           ec2types.KeyTypeEd25519,
		TagSpecifications: rigTagSpec(ec2types.ResourceTypeKeyPair, rig, keyName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create key pair %q: %w", keyName, err)
	}

	return deref(output.KeyMaterial), nil
}

// DeleteKeyPair deletes a key pair by name.
func (c *Client) DeleteKeyPair(ctx context.Context, keyName string) error {
	_, err := c.EC2.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
		KeyName: aws.String(keyName),
	})
	return err
}
