// Package catalog aggregates server group state across provider sources and
// assembles the consumer-facing views.
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/fleetview/fleetview/providers"
	"github.com/fleetview/fleetview/telemetry"
	"github.com/fleetview/fleetview/types"
)

// LookupExact asks every source for the (account, region, name) server group
// in parallel and merges non-absent answers under set semantics: results that
// are Equal collapse to one. When sources return distinct results for the
// same key, the first in source order wins; that ambiguity is accepted, not
// tie-broken. Returns *NotFoundError when no source has the resource.
//
// Failure policy is fail-fast: the first source error cancels the remaining
// calls and propagates unmodified.
func LookupExact(ctx context.Context, account, region, name string, sources []providers.Source) (*types.ServerGroup, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "catalog.lookup_exact",
		trace.WithAttributes(
			attribute.String("account", account),
			attribute.String("region", region),
			attribute.String("server_group", name),
			attribute.Int("sources", len(sources)),
		),
	)
	defer span.End()
	start := time.Now()

	results := make([]*types.ServerGroup, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			sg, err := src.GetServerGroup(gctx, account, region, name)
			if err != nil {
				return err
			}
			results[i] = sg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		recordLookup(ctx, "error")
		return nil, err
	}
	recordFanout(ctx, "lookup", time.Since(start))

	merged := dedupe(results)
	if len(merged) == 0 {
		recordLookup(ctx, "not_found")
		return nil, &NotFoundError{Name: name, Account: account, Region: region}
	}

	span.SetAttributes(attribute.Int("results", len(merged)))
	recordLookup(ctx, "found")
	return merged[0], nil
}

// ListByApplication fans a cluster listing out across the sources whose
// cloud provider ID matches the filter (empty filter selects all), discards
// absent results, and flattens the cluster maps in source order. Cluster
// order within one source is its map keys sorted, so repeated calls over the
// same inputs produce the same sequence.
func ListByApplication(ctx context.Context, application, cloudProvider string, sources []providers.Source) ([]types.Cluster, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "catalog.list_by_application",
		trace.WithAttributes(
			attribute.String("application", application),
			attribute.String("cloud_provider", cloudProvider),
		),
	)
	defer span.End()
	start := time.Now()

	selected := filterByCloudProvider(sources, cloudProvider)
	span.SetAttributes(attribute.Int("sources", len(selected)))

	results := make([]map[string]types.Cluster, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range selected {
		i, src := i, src
		g.Go(func() error {
			clusters, err := src.ListClusters(gctx, application)
			if err != nil {
				return err
			}
			results[i] = clusters
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	recordFanout(ctx, "list", time.Since(start))

	var flattened []types.Cluster
	for _, byName := range results {
		if len(byName) == 0 {
			continue
		}
		keys := make([]string, 0, len(byName))
		for name := range byName {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		for _, name := range keys {
			flattened = append(flattened, byName[name])
		}
	}
	return flattened, nil
}

func filterByCloudProvider(sources []providers.Source, cloudProvider string) []providers.Source {
	if cloudProvider == "" {
		return sources
	}
	selected := make([]providers.Source, 0, len(sources))
	for _, src := range sources {
		if strings.EqualFold(src.CloudProviderID(), cloudProvider) {
			selected = append(selected, src)
		}
	}
	return selected
}

// dedupe keeps the first occurrence of each distinct result, preserving
// source order. Equality is ServerGroup.Equal, i.e. the required attribute
// subset only.
func dedupe(results []*types.ServerGroup) []*types.ServerGroup {
	var merged []*types.ServerGroup
	for _, sg := range results {
		if sg == nil {
			continue
		}
		seen := false
		for _, kept := range merged {
			if kept.Equal(sg) {
				seen = true
				break
			}
		}
		if !seen {
			merged = append(merged, sg)
		}
	}
	return merged
}

func recordLookup(ctx context.Context, outcome string) {
	if telemetry.LookupsTotal == nil {
		return
	}
	telemetry.LookupsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}

func recordFanout(ctx context.Context, operation string, elapsed time.Duration) {
	if telemetry.FanoutDuration == nil {
		return
	}
	telemetry.FanoutDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("operation", operation)))
}
