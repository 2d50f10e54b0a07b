package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// RigTagKey marks every resource created by devrig with the rig it
// belongs to, so teardown can find resources even without a state file.
const RigTagKey = "devrig:rig"

func rigTags(rig, name string) []ec2types.Tag {
	return []ec2types.Tag{
		{Key: aws.String("Name"), Value: aws.String(name)},
		{Key: aws.String(RigTagKey), Value: aws.String(rig)},
	}
}

func rigTagSpec(resourceType ec2types.ResourceType, rig, name string) []ec2types.TagSpecification {
	return []ec2types.TagSpecification{
		{
			ResourceType: resourceType,
			Tags:         rigTags(rig, name),
		},
	}
}

func rigIAMTags(rig string) []iamtypes.Tag {
	return []iamtypes.Tag{
		{Key: aws.String(RigTagKey), Value: aws.String(rig)},
	}
}

// hasRigTag reports whether the IAM tags contain the rig ownership tag.
// Teardown only touches IAM resources devrig created itself.
func hasRigTag(rig string, tags []iamtypes.Tag) bool {
	for _, tag := range tags {
		if deref(tag.Key) == RigTagKey && deref(tag.Value) == rig {
			return true
		}
	}
	return false
}
