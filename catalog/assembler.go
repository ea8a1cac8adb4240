package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fleetview/fleetview/names"
	"github.com/fleetview/fleetview/providers"
	"github.com/fleetview/fleetview/telemetry"
	"github.com/fleetview/fleetview/types"
	"github.com/fleetview/fleetview/views"
)

// OpenRecorder converts an arbitrary value into an open key/value record.
// It is the serialization collaborator used only by expanded mode.
type OpenRecorder func(v any) (map[string]any, error)

// JSONOpenRecorder is the default OpenRecorder, a JSON round-trip.
func JSONOpenRecorder(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal to open record: %w", err)
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal open record: %w", err)
	}
	return record, nil
}

// Assembler combines provider aggregation with view projection. It holds no
// state across calls; every operation is a single-pass, idempotent read.
type Assembler struct {
	sources []providers.Source
	record  OpenRecorder
	logger  *telemetry.Logger
}

// NewAssembler creates an assembler over the given sources.
func NewAssembler(sources []providers.Source) *Assembler {
	return &Assembler{
		sources: sources,
		record:  JSONOpenRecorder,
		logger:  telemetry.NewLogger("catalog"),
	}
}

// WithOpenRecorder overrides the expanded-mode serialization collaborator.
func (a *Assembler) WithOpenRecorder(record OpenRecorder) *Assembler {
	a.record = record
	return a
}

// ListOptions select the output shape of List.
type ListOptions struct {
	CloudProvider string
	Expand        bool
}

// List routes to expanded or summary mode based on the expand flag. The
// entries are ready for boundary serialization in either case.
func (a *Assembler) List(ctx context.Context, application string, opts ListOptions) ([]any, error) {
	if opts.Expand {
		records, err := a.Expanded(ctx, application, opts.CloudProvider)
		if err != nil {
			return nil, err
		}
		entries := make([]any, len(records))
		for i, rec := range records {
			entries[i] = rec
		}
		return entries, nil
	}

	summaries, err := a.Summaries(ctx, application, opts.CloudProvider)
	if err != nil {
		return nil, err
	}
	entries := make([]any, len(summaries))
	for i, view := range summaries {
		entries[i] = view
	}
	return entries, nil
}

// Summaries returns the strict projection of every server group for one
// application: cluster order as aggregated, then server group order within
// each cluster.
func (a *Assembler) Summaries(ctx context.Context, application, cloudProvider string) ([]views.ServerGroupSummary, error) {
	clusters, err := ListByApplication(ctx, application, cloudProvider, a.sources)
	if err != nil {
		return nil, err
	}

	summaries := make([]views.ServerGroupSummary, 0)
	for i := range clusters {
		cluster := &clusters[i]
		for _, sg := range cluster.ServerGroups {
			if sg == nil {
				continue
			}
			summaries = append(summaries, views.ProjectServerGroup(sg, cluster))
		}
	}

	a.recordListed(ctx, application, "summary", len(summaries))
	return summaries, nil
}

// Expanded returns the denormalized projection: every provider field the
// summary view would drop, augmented with the owning account and the parsed
// naming parts of the cluster.
func (a *Assembler) Expanded(ctx context.Context, application, cloudProvider string) ([]map[string]any, error) {
	clusters, err := ListByApplication(ctx, application, cloudProvider, a.sources)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0)
	for i := range clusters {
		cluster := &clusters[i]
		parsed := names.Parse(cluster.Name)
		for _, sg := range cluster.ServerGroups {
			if sg == nil {
				continue
			}
			record, err := a.record(sg)
			if err != nil {
				return nil, fmt.Errorf("expand server group %s: %w", sg.Name, err)
			}
			record["accountName"] = cluster.AccountName
			record["application"] = parsed.Application
			record["stack"] = parsed.Stack
			record["detail"] = parsed.Detail
			record["cluster"] = parsed.Cluster
			records = append(records, record)
		}
	}

	a.recordListed(ctx, application, "expanded", len(records))
	return records, nil
}

// Lookup resolves a single exact server group across all sources.
func (a *Assembler) Lookup(ctx context.Context, account, region, name string) (*types.ServerGroup, error) {
	return LookupExact(ctx, account, region, name, a.sources)
}

func (a *Assembler) recordListed(ctx context.Context, application, mode string, count int) {
	a.logger.WithContext(ctx).Debug().
		Str("application", application).
		Str("mode", mode).
		Int("server_groups", count).
		Msg("assembled server group list")

	if telemetry.ServerGroupsListed == nil {
		return
	}
	telemetry.ServerGroupsListed.Add(ctx, int64(count),
		metric.WithAttributes(
			attribute.String("application", application),
			attribute.String("mode", mode),
		))
}
