package types

// ServerGroup is a provider-owned snapshot of one named, versioned group of
// compute instances. Required fields are populated by every provider; the
// optional fields below the marker are capabilities a provider may not
// expose, where nil means "not supported" rather than "empty".
type ServerGroup struct {
	Name           string         `json:"name"`
	Region         string         `json:"region"`
	CloudProvider  string         `json:"cloudProvider"`
	Type           string         `json:"type"`
	CreatedTime    int64          `json:"createdTime"`
	Disabled       bool           `json:"disabled"`
	Instances      []*Instance    `json:"instances"`
	InstanceCounts InstanceCounts `json:"instanceCounts"`
	SecurityGroups []string       `json:"securityGroups"`
	LoadBalancers  []string       `json:"loadBalancers"`

	// Optional capabilities.
	BuildInfo        map[string]any    `json:"buildInfo,omitempty"`
	VpcID            *string           `json:"vpcId,omitempty"`
	ProviderMetadata map[string]any    `json:"providerMetadata,omitempty"`
	LaunchConfig     *LaunchConfig     `json:"launchConfig,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// InstanceCounts summarizes instance health within a server group.
type InstanceCounts struct {
	Total        int `json:"total"`
	Up           int `json:"up"`
	Down         int `json:"down"`
	Unknown      int `json:"unknown"`
	OutOfService int `json:"outOfService"`
	Starting     int `json:"starting"`
}

// LaunchConfig carries the subset of launch configuration the views need.
type LaunchConfig struct {
	InstanceType string `json:"instanceType,omitempty"`
}

// Cluster groups server groups that share a naming lineage within one account.
// ServerGroups may be nil; consumers treat that as empty, never as an error.
type Cluster struct {
	Name         string         `json:"name"`
	AccountName  string         `json:"accountName"`
	ServerGroups []*ServerGroup `json:"serverGroups,omitempty"`
}

// Equal reports value equality over the required attribute subset.
// Optional capabilities (build info, VPC, metadata, launch config, tags) are
// deliberately excluded: two providers describing the same group with
// different optional detail still merge to one result.
func (sg *ServerGroup) Equal(other *ServerGroup) bool {
	if sg == nil || other == nil {
		return sg == other
	}
	if sg.Name != other.Name ||
		sg.Region != other.Region ||
		sg.CloudProvider != other.CloudProvider ||
		sg.Type != other.Type ||
		sg.CreatedTime != other.CreatedTime ||
		sg.Disabled != other.Disabled ||
		sg.InstanceCounts != other.InstanceCounts {
		return false
	}
	if !equalStrings(sg.SecurityGroups, other.SecurityGroups) ||
		!equalStrings(sg.LoadBalancers, other.LoadBalancers) {
		return false
	}
	return equalInstanceNames(sg.Instances, other.Instances)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInstanceNames(a, b []*Instance) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch {
		case a[i] == nil || b[i] == nil:
			if a[i] != b[i] {
				return false
			}
		case a[i].Name != b[i].Name:
			return false
		}
	}
	return true
}
