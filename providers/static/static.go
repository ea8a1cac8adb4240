// Package static implements a fixture-backed provider source. It serves
// server groups from an in-memory snapshot or a JSON fixture file, for
// offline operation and tests.
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fleetview/fleetview/types"
)

// Source serves a fixed set of clusters per application.
type Source struct {
	cloudProvider string
	applications  map[string][]types.Cluster
}

// New creates an empty source for the given cloud provider ID.
func New(cloudProvider string) *Source {
	return &Source{
		cloudProvider: cloudProvider,
		applications:  make(map[string][]types.Cluster),
	}
}

// AddCluster registers a cluster under an application.
func (s *Source) AddCluster(application string, cluster types.Cluster) *Source {
	s.applications[application] = append(s.applications[application], cluster)
	return s
}

// CloudProviderID implements providers.Source.
func (s *Source) CloudProviderID() string {
	return s.cloudProvider
}

// GetServerGroup implements providers.Source. Returns (nil, nil) when no
// fixture matches the key.
func (s *Source) GetServerGroup(ctx context.Context, account, region, name string) (*types.ServerGroup, error) {
	for _, clusters := range s.applications {
		for _, cluster := range clusters {
			if cluster.AccountName != account {
				continue
			}
			for _, sg := range cluster.ServerGroups {
				if sg != nil && sg.Region == region && sg.Name == name {
					return sg, nil
				}
			}
		}
	}
	return nil, nil
}

// ListClusters implements providers.Source. Returns nil for applications the
// fixture does not know.
func (s *Source) ListClusters(ctx context.Context, application string) (map[string]types.Cluster, error) {
	clusters, ok := s.applications[application]
	if !ok {
		return nil, nil
	}
	byName := make(map[string]types.Cluster, len(clusters))
	for _, cluster := range clusters {
		byName[cluster.Name] = cluster
	}
	return byName, nil
}

type fixture struct {
	CloudProvider string                     `json:"cloudProvider"`
	Applications  map[string][]types.Cluster `json:"applications"`
}

// LoadFile builds a source from a JSON fixture file.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.CloudProvider == "" {
		return nil, fmt.Errorf("fixture %s: cloudProvider is required", path)
	}

	src := New(f.CloudProvider)
	for application, clusters := range f.Applications {
		for _, cluster := range clusters {
			src.AddCluster(application, cluster)
		}
	}
	return src, nil
}
