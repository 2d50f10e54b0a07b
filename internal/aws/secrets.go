package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// StoreKeySecret uploads the rig's private key PEM to Secrets Manager so
// teammates can fetch it without access to the machine that ran `up`.
// Returns the secret ARN.
func (c *Client) StoreKeySecret(ctx context.Context, rig, secretName, pem string) (string, error) {
	output, err := c.Secrets.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(secretName),
		Description:  aws.String("devrig SSH private key for rig " + rig),
		SecretString: aws.String(pem),
		Tags: []smtypes.Tag{
			{Key: aws.String(RigTagKey), Value: aws.String(rig)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to store key secret %q: %w", secretName, err)
	}

	return deref(output.ARN), nil
}

// FindRigKeySecrets returns the ARNs of key secrets tagged with the rig
// name. Used when teardown runs without a state file.
func (c *Client) FindRigKeySecrets(ctx context.Context, rig string) ([]string, error) {
	output, err := c.Secrets.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		Filters: []smtypes.Filter{
			{Key: smtypes.FilterNameStringTypeTagKey, Values: []string{RigTagKey}},
			{Key: smtypes.FilterNameStringTypeTagValue, Values: []string{rig}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list key secrets: %w", err)
	}

	var arns []string
	for _, secret := range output.SecretList {
		arns = append(arns, deref(secret.ARN))
	}

	return arns, nil
}

// DeleteKeySecret deletes the key secret immediately, skipping the
// recovery window.
func (c *Client) DeleteKeySecret(ctx context.Context, secretID string) error {
	_, err := c.Secrets.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   aws.String(secretID),
		ForceDeleteWithoutRecovery: aws.Bool(true),
	})
	return err
}
