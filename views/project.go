package views

import "github.com/fleetview/fleetview/types"

// ProjectServerGroup builds the summary view of one server group within its
// owning cluster. Pure and deterministic: projecting the same pair twice
// yields equal views.
func ProjectServerGroup(sg *types.ServerGroup, cluster *types.Cluster) ServerGroupSummary {
	view := ServerGroupSummary{
		Name:           sg.Name,
		Account:        cluster.AccountName,
		Region:         sg.Region,
		Cluster:        cluster.Name,
		CloudProvider:  sg.CloudProvider,
		Type:           sg.Type,
		CreatedTime:    sg.CreatedTime,
		IsDisabled:     sg.Disabled,
		Instances:      projectInstances(sg.Instances),
		InstanceCounts: sg.InstanceCounts,
		SecurityGroups: sg.SecurityGroups,
		LoadBalancers:  sg.LoadBalancers,
	}

	if sg.LaunchConfig != nil && sg.LaunchConfig.InstanceType != "" {
		view.InstanceType = sg.LaunchConfig.InstanceType
	}
	if len(sg.Tags) > 0 {
		view.Tags = sg.Tags
	}
	if sg.BuildInfo != nil {
		view.BuildInfo = sg.BuildInfo
	}
	if sg.VpcID != nil {
		view.VpcID = sg.VpcID
	}
	if sg.ProviderMetadata != nil {
		view.ProviderMetadata = sg.ProviderMetadata
	}
	return view
}

func projectInstances(instances []*types.Instance) []InstanceSummary {
	summaries := make([]InstanceSummary, 0, len(instances))
	for _, inst := range instances {
		if inst == nil {
			continue
		}
		summaries = append(summaries, ProjectInstance(inst))
	}
	return summaries
}

// ProjectInstance builds the normalized view of one instance, including its
// health-check records.
func ProjectInstance(inst *types.Instance) InstanceSummary {
	health := make([]HealthSummary, 0, len(inst.Health))
	for _, rec := range inst.Health {
		health = append(health, projectHealth(rec))
	}
	return InstanceSummary{
		Name:        inst.Name,
		HealthState: inst.HealthState.String(),
		LaunchTime:  inst.LaunchTime,
		Zone:        inst.Zone,
		Health:      health,
	}
}

func projectHealth(rec types.HealthRecord) HealthSummary {
	view := HealthSummary{
		Type:   rec.Type,
		State:  rec.State,
		Status: rec.Status,
	}
	if rec.Type == types.LoadBalancerHealthType && len(rec.LoadBalancers) > 0 {
		view.LoadBalancers = make([]LoadBalancerHealthSummary, 0, len(rec.LoadBalancers))
		for _, lb := range rec.LoadBalancers {
			view.LoadBalancers = append(view.LoadBalancers, LoadBalancerHealthSummary{
				Name:             lb.LoadBalancerName,
				State:            lb.State,
				Description:      lb.Description,
				HealthState:      lb.HealthState,
				LoadBalancerType: lb.LoadBalancerType,
			})
		}
	}
	return view
}
