package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Tracer spans provider fan-out and view assembly.
var Tracer = otel.Tracer("github.com/fleetview/fleetview")

// Meter instruments the aggregation core.
var Meter = otel.Meter("github.com/fleetview/fleetview")

var (
	// LookupsTotal counts exact server group lookups, labelled by outcome.
	LookupsTotal metric.Int64Counter

	// ServerGroupsListed counts server groups emitted by list operations.
	ServerGroupsListed metric.Int64Counter

	// FanoutDuration measures one provider fan-out, in seconds.
	FanoutDuration metric.Float64Histogram
)

// InitMetrics creates the instruments against the installed meter provider.
// Safe to skip: uninitialized instruments are nil and recording is guarded.
func InitMetrics() error {
	var err error

	LookupsTotal, err = Meter.Int64Counter(
		"fleetview_lookups_total",
		metric.WithDescription("Exact server group lookups by outcome"),
	)
	if err != nil {
		return fmt.Errorf("create lookup counter: %w", err)
	}

	ServerGroupsListed, err = Meter.Int64Counter(
		"fleetview_server_groups_listed_total",
		metric.WithDescription("Server groups emitted by list operations"),
	)
	if err != nil {
		return fmt.Errorf("create listed counter: %w", err)
	}

	FanoutDuration, err = Meter.Float64Histogram(
		"fleetview_provider_fanout_duration_seconds",
		metric.WithDescription("Duration of one provider fan-out"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("create fanout histogram: %w", err)
	}

	return nil
}
