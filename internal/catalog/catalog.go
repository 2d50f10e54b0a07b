// Package catalog generates instance type manifests for the autoscaler
// under development: per-type resources plus spot and on-demand
// offerings per availability zone.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"golang.org/x/sync/errgroup"

	"github.com/hoanm/devrig/internal/aws"
	"github.com/hoanm/devrig/pkg/types"
)

const defaultWorkers = 5

// Builder generates the instance type catalog.
type Builder struct {
	Client  *aws.Client
	Region  string
	Workers int

	// Warnf receives per-type failures, which are skipped rather than
	// aborting the whole run
	Warnf func(format string, args ...any)
}

// Build expands the families to concrete instance types and gathers
// details and prices for each, using a bounded worker pool.
func (b *Builder) Build(ctx context.Context, families []string) ([]types.InstanceTypeEntry, error) {
	zones, err := b.Client.AvailabilityZones(ctx)
	if err != nil {
		return nil, err
	}

	var infos []ec2types.InstanceTypeInfo
	for _, family := range families {
		familyInfos, err := b.Client.InstanceTypesForFamily(ctx, NormalizeFamily(family))
		if err != nil {
			return nil, err
		}
		if len(familyInfos) == 0 {
			b.warnf("no instance types found for family %s", family)
		}
		infos = append(infos, familyInfos...)
	}

	if len(infos) == 0 {
		return nil, fmt.Errorf("no instance types found for families %v", families)
	}

	workers := b.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var mu sync.Mutex
	var entries []types.InstanceTypeEntry

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, info := range infos {
		g.Go(func() error {
			entry, err := b.buildEntry(gctx, zones, info)
			if err != nil {
				b.warnf("skipping %s: %v", string(info.InstanceType), err)
				return nil
			}

			mu.Lock()
			entries = append(entries, *entry)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func (b *Builder) buildEntry(ctx context.Context, zones []string, info ec2types.InstanceTypeInfo) (*types.InstanceTypeEntry, error) {
	name := string(info.InstanceType)

	spotPrices, err := b.Client.SpotPrices(ctx, name)
	if err != nil {
		return nil, err
	}

	onDemand, hasOnDemand, err := b.Client.OnDemandPrice(ctx, b.Region, name)
	if err != nil {
		// pricing gaps are common for exotic types; keep the spot data
		b.warnf("no on-demand price for %s: %v", name, err)
		hasOnDemand = false
	}

	return &types.InstanceTypeEntry{
		Name:             name,
		Offerings:        Offerings(zones, LowestSpotByAZ(spotPrices), onDemand, hasOnDemand),
		Architecture:     Architecture(info),
		OperatingSystems: OperatingSystems(info),
		Resources:        Resources(info),
	}, nil
}

func (b *Builder) warnf(format string, args ...any) {
	if b.Warnf != nil {
		b.Warnf(format, args...)
	}
}

// Write renders the entries as indented JSON to path.
func Write(path string, entries []types.InstanceTypeEntry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}
