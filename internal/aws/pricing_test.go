package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingLocation(t *testing.T) {
	assert.Equal(t, "US East (N. Virginia)", PricingLocation("us-east-1"))
	assert.Equal(t, "EU (Frankfurt)", PricingLocation("eu-central-1"))
	assert.Equal(t, "Asia Pacific (Tokyo)", PricingLocation("ap-northeast-1"))

	// unknown regions pass through
	assert.Equal(t, "mars-north-1", PricingLocation("mars-north-1"))
}

func TestParseOnDemandPrice(t *testing.T) {
	product := `{
		"product": {"attributes": {"instanceType": "m5.large"}},
		"terms": {
			"OnDemand": {
				"ABC.JRTCKXETXF": {
					"priceDimensions": {
						"ABC.JRTCKXETXF.6YS6EN2CT7": {
							"unit": "Hrs",
							"pricePerUnit": {"USD": "0.0960000000"}
						}
					}
				}
			}
		}
	}`

	price, ok := ParseOnDemandPrice(product)
	assert.True(t, ok)
	assert.InDelta(t, 0.096, price, 1e-9)
}

func TestParseOnDemandPriceZeroSkipped(t *testing.T) {
	product := `{
		"terms": {
			"OnDemand": {
				"A": {
					"priceDimensions": {
						"A.1": {"pricePerUnit": {"USD": "0.0000000000"}}
					}
				}
			}
		}
	}`

	_, ok := ParseOnDemandPrice(product)
	assert.False(t, ok)
}

func TestParseOnDemandPriceBadInput(t *testing.T) {
	_, ok := ParseOnDemandPrice("not json")
	assert.False(t, ok)

	_, ok = ParseOnDemandPrice(`{"terms": {}}`)
	assert.False(t, ok)
}
