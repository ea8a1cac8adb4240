// Package providers defines the contract a cloud backend implements to
// contribute server group data, plus the registry the edges use to wire
// sources together. The aggregation core never touches the registry; it
// receives sources explicitly.
package providers

import (
	"context"
	"sync"

	"github.com/fleetview/fleetview/types"
)

// Source is the only contract a cloud backend must implement.
type Source interface {
	// CloudProviderID identifies the backing cloud (e.g. "aws", "gcp").
	// Used for case-insensitive filtering, never for dispatch.
	CloudProviderID() string

	// GetServerGroup returns the named server group, or (nil, nil) when
	// this source has no resource for the key.
	GetServerGroup(ctx context.Context, account, region, name string) (*types.ServerGroup, error)

	// ListClusters returns the clusters owning server groups for one
	// application, keyed by cluster name. A nil map means no results.
	ListClusters(ctx context.Context, application string) (map[string]types.Cluster, error)
}

var (
	mu       sync.RWMutex
	registry []Source
)

// Register adds a source to the registry.
func Register(s Source) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, s)
}

// All returns registered sources in registration order.
func All() []Source {
	mu.RLock()
	defer mu.RUnlock()
	sources := make([]Source, len(registry))
	copy(sources, registry)
	return sources
}

// Names returns the cloud provider IDs of all registered sources.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for _, s := range registry {
		names = append(names, s.CloudProviderID())
	}
	return names
}

// Reset clears the registry. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
}
