// Package views projects provider-owned server group snapshots into the
// flat, provider-agnostic shapes returned to callers.
package views

import "github.com/fleetview/fleetview/types"

// ServerGroupSummary is the stable-contract projection of one server group.
// Optional fields carry omitempty so an attribute a provider does not expose
// is absent from the serialized view, not null.
type ServerGroupSummary struct {
	Name           string               `json:"name"`
	Account        string               `json:"account"`
	Region         string               `json:"region"`
	Cluster        string               `json:"cluster"`
	CloudProvider  string               `json:"cloudProvider"`
	Type           string               `json:"type"`
	CreatedTime    int64                `json:"createdTime"`
	IsDisabled     bool                 `json:"isDisabled"`
	Instances      []InstanceSummary    `json:"instances"`
	InstanceCounts types.InstanceCounts `json:"instanceCounts"`
	SecurityGroups []string             `json:"securityGroups"`
	LoadBalancers  []string             `json:"loadBalancers"`

	InstanceType     string            `json:"instanceType,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
	BuildInfo        map[string]any    `json:"buildInfo,omitempty"`
	VpcID            *string           `json:"vpcId,omitempty"`
	ProviderMetadata map[string]any    `json:"providerMetadata,omitempty"`
}

// InstanceSummary is the normalized view of one instance.
type InstanceSummary struct {
	Name        string          `json:"name"`
	HealthState string          `json:"healthState"`
	LaunchTime  int64           `json:"launchTime"`
	Zone        string          `json:"zone"`
	Health      []HealthSummary `json:"health"`
}

// HealthSummary is the normalized view of one health-check record.
type HealthSummary struct {
	Type          string                      `json:"type"`
	State         string                      `json:"state,omitempty"`
	Status        string                      `json:"status,omitempty"`
	LoadBalancers []LoadBalancerHealthSummary `json:"loadBalancers,omitempty"`
}

// LoadBalancerHealthSummary is one load balancer attachment in a health view.
type LoadBalancerHealthSummary struct {
	Name             string `json:"name"`
	State            string `json:"state,omitempty"`
	Description      string `json:"description,omitempty"`
	HealthState      string `json:"healthState,omitempty"`
	LoadBalancerType string `json:"loadBalancerType,omitempty"`
}
