package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// The pricing API filters on human-readable location names, not region
// codes.
var pricingLocations = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"eu-west-1":      "EU (Ireland)",
	"eu-central-1":   "EU (Frankfurt)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"eu-west-2":      "EU (London)",
	"eu-west-3":      "EU (Paris)",
	"eu-north-1":     "EU (Stockholm)",
	"sa-east-1":      "South America (Sao Paulo)",
	"ca-central-1":   "Canada (Central)",
	"ap-east-1":      "Asia Pacific (Hong Kong)",
	"me-south-1":     "Middle East (Bahrain)",
	"af-south-1":     "Africa (Cape Town)",
	"eu-south-1":     "EU (Milan)",
}

// PricingLocation maps a region code to the location name used by the
// pricing API. Unknown regions pass through unchanged.
func PricingLocation(region string) string {
	if loc, ok := pricingLocations[region]; ok {
		return loc
	}
	return region
}

// OnDemandPrice returns the hourly Linux on-demand price in USD for an
// instance type, or ok=false when the pricing API has no entry for it.
func (c *Client) OnDemandPrice(ctx context.Context, region, instanceType string) (float64, bool, error) {
	termMatch := func(field, value string) pricingtypes.Filter {
		return pricingtypes.Filter{
			Type:  pricingtypes.FilterTypeTermMatch,
			Field: aws.String(field),
			Value: aws.String(value),
		}
	}

	output, err := c.Pricing.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		Filters: []pricingtypes.Filter{
			termMatch("instanceType", instanceType),
			termMatch("location", PricingLocation(region)),
			termMatch("operatingSystem", "Linux"),
			termMatch("preInstalledSw", "NA"),
			termMatch("tenancy", "Shared"),
			termMatch("capacitystatus", "Used"),
		},
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to get on-demand pricing for %q: %w", instanceType, err)
	}

	for _, product := range output.PriceList {
		if price, ok := ParseOnDemandPrice(product); ok {
			return price, true, nil
		}
	}

	return 0, false, nil
}

// ParseOnDemandPrice digs the first USD price dimension out of a pricing
// API product document.
func ParseOnDemandPrice(product string) (float64, bool) {
	var doc struct {
		Terms struct {
			OnDemand map[string]struct {
				PriceDimensions map[string]struct {
					PricePerUnit map[string]string `json:"pricePerUnit"`
				} `json:"priceDimensions"`
			} `json:"OnDemand"`
		} `json:"terms"`
	}

	if err := json.Unmarshal([]byte(product), &doc); err != nil {
		return 0, false
	}

	for _, term := range doc.Terms.OnDemand {
		for _, dim := range term.PriceDimensions {
			usd, ok := dim.PricePerUnit["USD"]
			if !ok {
				continue
			}
			price, err := strconv.ParseFloat(usd, 64)
			if err != nil || price == 0 {
				continue
			}
			return price, true
		}
	}

	return 0, false
}
