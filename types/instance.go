package types

// HealthState is the canonical health of an instance or attachment.
type HealthState string

const (
	HealthUp           HealthState = "Up"
	HealthDown         HealthState = "Down"
	HealthOutOfService HealthState = "OutOfService"
	HealthStarting     HealthState = "Starting"
	HealthUnknown      HealthState = "Unknown"
)

func (h HealthState) String() string {
	return string(h)
}

// LoadBalancerHealthType is the reserved health-record kind that carries
// nested load balancer attachment records.
const LoadBalancerHealthType = "LoadBalancer"

// Instance is one compute instance inside a server group.
type Instance struct {
	Name        string         `json:"name"`
	HealthState HealthState    `json:"healthState"`
	LaunchTime  int64          `json:"launchTime"`
	Zone        string         `json:"zone"`
	Health      []HealthRecord `json:"health"`
}

// HealthRecord is one heterogeneous health-check entry. State, Status and
// LoadBalancers are optional; LoadBalancers is only meaningful when Type is
// LoadBalancerHealthType.
type HealthRecord struct {
	Type          string               `json:"type"`
	State         string               `json:"state,omitempty"`
	Status        string               `json:"status,omitempty"`
	LoadBalancers []LoadBalancerHealth `json:"loadBalancers,omitempty"`
}

// LoadBalancerHealth is one load balancer attachment inside a health record.
type LoadBalancerHealth struct {
	LoadBalancerName string `json:"loadBalancerName"`
	State            string `json:"state,omitempty"`
	Description      string `json:"description,omitempty"`
	HealthState      string `json:"healthState,omitempty"`
	LoadBalancerType string `json:"loadBalancerType,omitempty"`
}
