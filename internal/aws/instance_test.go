package aws

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

func TestToInstance(t *testing.T) {
	launched := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	inst := toInstance(ec2types.Instance{
		InstanceId:       aws.String("i-0123456789abcdef0"),
		InstanceType:     ec2types.InstanceTypeT3Large,
		State:            &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
		PrivateIpAddress: aws.String("10.0.1.5"),
		PublicIpAddress:  aws.String("54.1.2.3"),
		KeyName:          aws.String("devrig-dev"),
		LaunchTime:       &launched,
		Placement:        &ec2types.Placement{AvailabilityZone: aws.String("us-west-2a")},
		Tags: []ec2types.Tag{
			{Key: aws.String("Name"), Value: aws.String("devrig-dev")},
			{Key: aws.String(RigTagKey), Value: aws.String("dev")},
			{Key: aws.String("team"), Value: aws.String("platform")},
		},
	})

	assert.Equal(t, "i-0123456789abcdef0", inst.ID)
	assert.Equal(t, "devrig-dev", inst.Name)
	assert.Equal(t, "dev", inst.Rig)
	assert.Equal(t, "running", inst.State)
	assert.Equal(t, "t3.large", inst.Type)
	assert.Equal(t, "10.0.1.5", inst.PrivateIP)
	assert.Equal(t, "54.1.2.3", inst.PublicIP)
	assert.Equal(t, "us-west-2a", inst.AZ)
	assert.Equal(t, "devrig-dev", inst.KeyName)
	assert.Equal(t, launched, inst.LaunchTime)
}

func TestToInstanceMinimal(t *testing.T) {
	inst := toInstance(ec2types.Instance{
		InstanceId:   aws.String("i-deadbeef"),
		InstanceType: ec2types.InstanceTypeT3Micro,
		State:        &ec2types.InstanceState{Name: ec2types.InstanceStateNamePending},
	})

	assert.Equal(t, "i-deadbeef", inst.ID)
	assert.Equal(t, "pending", inst.State)
	assert.Empty(t, inst.Name)
	assert.Empty(t, inst.PublicIP)
	assert.Empty(t, inst.PrivateIP)
}
