package catalog

import (
	"fmt"
	"strconv"
	"strings"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/hoanm/devrig/pkg/types"
)

const (
	capacityTypeKey = "karpenter.sh/capacity-type"
	zoneKey         = "topology.kubernetes.io/zone"

	// kubelet reserves nothing here; a flat default mirrors what the
	// dev cluster nodes are imaged with
	defaultEphemeralStorage = "20Gi"

	// rough ENI-based approximation, good enough for simulation
	podsPerInterface = 10
)

// NormalizeFamily strips a size suffix accidentally passed with the
// family, e.g. "m5.2xlarge" becomes "m5".
func NormalizeFamily(family string) string {
	if i := strings.Index(family, "."); i >= 0 {
		return family[:i]
	}
	return family
}

// Architecture returns the primary architecture of the instance type in
// kubernetes terms (x86_64 reported by EC2 is amd64 to the scheduler).
func Architecture(info ec2types.InstanceTypeInfo) string {
	arch := "x86_64"
	if info.ProcessorInfo != nil && len(info.ProcessorInfo.SupportedArchitectures) > 0 {
		arch = string(info.ProcessorInfo.SupportedArchitectures[0])
	}

	if arch == "x86_64" {
		return "amd64"
	}
	return arch
}

// OperatingSystems returns the operating systems the type can run.
// Linux is assumed; windows is added for non-nitro hypervisors.
func OperatingSystems(info ec2types.InstanceTypeInfo) []string {
	oses := []string{"linux"}
	if info.Hypervisor != ec2types.InstanceTypeHypervisorNitro {
		oses = append(oses, "windows")
	}
	return oses
}

// Resources returns the allocatable resources of the type as kubernetes
// quantity strings.
func Resources(info ec2types.InstanceTypeInfo) types.Resources {
	var vcpus int32
	if info.VCpuInfo != nil && info.VCpuInfo.DefaultVCpus != nil {
		vcpus = *info.VCpuInfo.DefaultVCpus
	}

	var memoryMiB int64
	if info.MemoryInfo != nil && info.MemoryInfo.SizeInMiB != nil {
		memoryMiB = *info.MemoryInfo.SizeInMiB
	}

	maxInterfaces := int32(8)
	if info.NetworkInfo != nil && info.NetworkInfo.MaximumNetworkInterfaces != nil {
		maxInterfaces = *info.NetworkInfo.MaximumNetworkInterfaces
	}

	return types.Resources{
		CPU:              strconv.Itoa(int(vcpus)),
		Memory:           formatMemory(memoryMiB),
		EphemeralStorage: defaultEphemeralStorage,
		Pods:             strconv.Itoa(int(maxInterfaces) * podsPerInterface),
	}
}

// formatMemory converts MiB to a Gi quantity string, keeping fractional
// sizes (e.g. 512 MiB -> "0.5Gi").
func formatMemory(mib int64) string {
	gib := float64(mib) / 1024
	if gib == float64(int64(gib)) {
		return fmt.Sprintf("%dGi", int64(gib))
	}
	return fmt.Sprintf("%gGi", gib)
}

// LowestSpotByAZ reduces spot price history to the lowest price seen per
// availability zone.
func LowestSpotByAZ(prices []ec2types.SpotPrice) map[string]float64 {
	lowest := make(map[string]float64)

	for _, p := range prices {
		if p.AvailabilityZone == nil || p.SpotPrice == nil {
			continue
		}

		price, err := strconv.ParseFloat(*p.SpotPrice, 64)
		if err != nil || price == 0 {
			continue
		}

		az := *p.AvailabilityZone
		if current, ok := lowest[az]; !ok || price < current {
			lowest[az] = price
		}
	}

	return lowest
}

// Offerings builds the offering list for one instance type: one spot
// offering per zone that has a price, plus an on-demand offering per
// zone when an on-demand price is known.
func Offerings(zones []string, spotByAZ map[string]float64, onDemand float64, hasOnDemand bool) []types.Offering {
	var offerings []types.Offering

	for _, az := range zones {
		price, ok := spotByAZ[az]
		if !ok {
			continue
		}
		offerings = append(offerings, types.Offering{
			Price:        price,
			Available:    true,
			Requirements: requirements("spot", az),
		})
	}

	if hasOnDemand {
		for _, az := range zones {
			offerings = append(offerings, types.Offering{
				Price:        onDemand,
				Available:    true,
				Requirements: requirements("on-demand", az),
			})
		}
	}

	return offerings
}

func requirements(capacityType, zone string) []types.Requirement {
	return []types.Requirement{
		{Key: capacityTypeKey, Operator: "In", Values: []string{capacityType}},
		{Key: zoneKey, Operator: "In", Values: []string{zone}},
	}
}
