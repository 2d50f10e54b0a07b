package catalog

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFamily(t *testing.T) {
	assert.Equal(t, "m5", NormalizeFamily("m5"))
	assert.Equal(t, "m5", NormalizeFamily("m5.2xlarge"))
	assert.Equal(t, "g6", NormalizeFamily("g6.xlarge"))
}

func TestArchitecture(t *testing.T) {
	x86 := ec2types.InstanceTypeInfo{
		ProcessorInfo: &ec2types.ProcessorInfo{
			SupportedArchitectures: []ec2types.ArchitectureType{ec2types.ArchitectureTypeX8664},
		},
	}
	assert.Equal(t, "amd64", Architecture(x86))

	arm := ec2types.InstanceTypeInfo{
		ProcessorInfo: &ec2types.ProcessorInfo{
			SupportedArchitectures: []ec2types.ArchitectureType{ec2types.ArchitectureTypeArm64},
		},
	}
	assert.Equal(t, "arm64", Architecture(arm))

	// no processor info defaults to amd64
	assert.Equal(t, "amd64", Architecture(ec2types.InstanceTypeInfo{}))
}

func TestOperatingSystems(t *testing.T) {
	nitro := ec2types.InstanceTypeInfo{Hypervisor: ec2types.InstanceTypeHypervisorNitro}
	assert.Equal(t, []string{"linux"}, OperatingSystems(nitro))

	xen := ec2types.InstanceTypeInfo{Hypervisor: ec2types.InstanceTypeHypervisorXen}
	assert.Equal(t, []string{"linux", "windows"}, OperatingSystems(xen))
}

func TestResources(t *testing.T) {
	info := ec2types.InstanceTypeInfo{
		VCpuInfo:    &ec2types.VCpuInfo{DefaultVCpus: aws.Int32(8)},
		MemoryInfo:  &ec2types.MemoryInfo{SizeInMiB: aws.Int64(32768)},
		NetworkInfo: &ec2types.NetworkInfo{MaximumNetworkInterfaces: aws.Int32(4)},
	}

	r := Resources(info)
	assert.Equal(t, "8", r.CPU)
	assert.Equal(t, "32Gi", r.Memory)
	assert.Equal(t, "20Gi", r.EphemeralStorage)
	assert.Equal(t, "40", r.Pods)
}

func TestResourcesDefaults(t *testing.T) {
	r := Resources(ec2types.InstanceTypeInfo{})
	assert.Equal(t, "0", r.CPU)
	assert.Equal(t, "0Gi", r.Memory)

	// 8 interfaces assumed when network info is missing
	assert.Equal(t, "80", r.Pods)
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "16Gi", formatMemory(16384))
	assert.Equal(t, "0.5Gi", formatMemory(512))
	assert.Equal(t, "1.5Gi", formatMemory(1536))
}

func TestLowestSpotByAZ(t *testing.T) {
	prices := []ec2types.SpotPrice{
		{AvailabilityZone: aws.String("us-west-2a"), SpotPrice: aws.String("0.035")},
		{AvailabilityZone: aws.String("us-west-2a"), SpotPrice: aws.String("0.021")},
		{AvailabilityZone: aws.String("us-west-2b"), SpotPrice: aws.String("0.040")},
		{AvailabilityZone: aws.String("us-west-2b"), SpotPrice: aws.String("not-a-number")},
		{AvailabilityZone: nil, SpotPrice: aws.String("0.001")},
		{AvailabilityZone: aws.String("us-west-2c"), SpotPrice: aws.String("0")},
	}

	lowest := LowestSpotByAZ(prices)
	assert.Len(t, lowest, 2)
	assert.InDelta(t, 0.021, lowest["us-west-2a"], 1e-9)
	assert.InDelta(t, 0.040, lowest["us-west-2b"], 1e-9)
}

func TestOfferings(t *testing.T) {
	zones := []string{"us-west-2a", "us-west-2b", "us-west-2c"}
	spot := map[string]float64{
		"us-west-2a": 0.021,
		"us-west-2c": 0.019,
	}

	offerings := Offerings(zones, spot, 0.096, true)

	// one spot offering per zone with a price, plus on-demand in every zone
	require.Len(t, offerings, 5)

	spotCount := 0
	for _, o := range offerings {
		require.Len(t, o.Requirements, 2)
		assert.Equal(t, capacityTypeKey, o.Requirements[0].Key)
		assert.Equal(t, "In", o.Requirements[0].Operator)
		assert.Equal(t, zoneKey, o.Requirements[1].Key)
		assert.True(t, o.Available)

		if o.Requirements[0].Values[0] == "spot" {
			spotCount++
			assert.Equal(t, spot[o.Requirements[1].Values[0]], o.Price)
		} else {
			assert.Equal(t, 0.096, o.Price)
		}
	}
	assert.Equal(t, 2, spotCount)
}

func TestOfferingsNoOnDemand(t *testing.T) {
	offerings := Offerings([]string{"eu-west-1a"}, map[string]float64{"eu-west-1a": 0.05}, 0, false)
	require.Len(t, offerings, 1)
	assert.Equal(t, []string{"spot"}, offerings[0].Requirements[0].Values)
}
