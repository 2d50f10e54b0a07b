package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Public SSM parameter published by AWS pointing at the latest Amazon
// Linux 2023 AMI for the region.
const al2023ParamFmt = "/aws/service/ami-amazon-linux-latest/al2023-ami-kernel-default-%s"

// LatestAL2023AMI resolves the latest Amazon Linux 2023 AMI ID for the
// given architecture (x86_64 or arm64) via SSM Parameter Store.
func (c *Client) LatestAL2023AMI(ctx context.Context, arch string) (string, error) {
	if arch == "" {
		arch = "x86_64"
	}

	name := fmt.Sprintf(al2023ParamFmt, arch)

	output, err := c.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve AMI from %q: %w", name, err)
	}

	return deref(output.Parameter.Value), nil
}
