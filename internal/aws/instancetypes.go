package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// InstanceTypesForFamily returns the full instance type descriptions for
// a family, e.g. "m5" expands to m5.large, m5.xlarge and so on.
func (c *Client) InstanceTypesForFamily(ctx context.Context, family string) ([]ec2types.InstanceTypeInfo, error) {
	var infos []ec2types.InstanceTypeInfo

	paginator := ec2.NewDescribeInstanceTypesPaginator(c.EC2, &ec2.DescribeInstanceTypesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("instance-type"),
				Values: []string{family + ".*"},
			},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instance types for family %q: %w", family, err)
		}
		infos = append(infos, page.InstanceTypes...)
	}

	return infos, nil
}

// SpotPrices returns the current spot price history entries for an
// instance type across all availability zones.
func (c *Client) SpotPrices(ctx context.Context, instanceType string) ([]ec2types.SpotPrice, error) {
	now := time.Now().UTC()

	var prices []ec2types.SpotPrice

	paginator := ec2.NewDescribeSpotPriceHistoryPaginator(c.EC2, &ec2.DescribeSpotPriceHistoryInput{
		InstanceTypes:       []ec2types.InstanceType{ec2types.InstanceType(instanceType)},
		ProductDescriptions: []string{"Linux/UNIX", "Windows"},
		StartTime:           aws.Time(now),
		EndTime:             aws.Time(now),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get spot prices for %q: %w", instanceType, err)
		}
		prices = append(prices, page.SpotPriceHistory...)
	}

	return prices, nil
}

// AvailabilityZones returns the zone names of the configured region.
func (c *Client) AvailabilityZones(ctx context.Context) ([]string, error) {
	output, err := c.EC2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe availability zones: %w", err)
	}

	var zones []string
	for _, az := range output.AvailabilityZones {
		zones = append(zones, deref(az.ZoneName))
	}

	return zones, nil
}
