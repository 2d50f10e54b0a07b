package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/stretchr/testify/assert"
)

func TestHasRigTag(t *testing.T) {
	tags := []iamtypes.Tag{
		{Key: aws.String("Name"), Value: aws.String("devrig-dev")},
		{Key: aws.String(RigTagKey), Value: aws.String("dev")},
	}

	assert.True(t, hasRigTag("dev", tags))
	assert.False(t, hasRigTag("perf", tags))
	assert.False(t, hasRigTag("dev", nil))
	assert.False(t, hasRigTag("dev", []iamtypes.Tag{
		{Key: aws.String("Name"), Value: aws.String("devrig-dev")},
	}))
}

func TestRigTags(t *testing.T) {
	tags := rigTags("dev", "devrig-dev")

	assert.Len(t, tags, 2)
	assert.Equal(t, "devrig-dev", *tags[0].Value)
	assert.Equal(t, RigTagKey, *tags[1].Key)
	assert.Equal(t, "dev", *tags[1].Value)
}
