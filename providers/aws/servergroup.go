package aws

import (
	"sort"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/fleetview/fleetview/types"
)

// instanceDetail is the EC2-side detail joined onto an Auto Scaling instance.
type instanceDetail struct {
	LaunchTime     int64
	Zone           string
	VpcID          string
	InstanceType   string
	SecurityGroups []string
}

// buildServerGroup converts one Auto Scaling group plus its joined EC2 and
// target health detail into the provider-neutral server group shape.
func buildServerGroup(asg autoscalingtypes.AutoScalingGroup, details map[string]instanceDetail, attachments map[string][]types.LoadBalancerHealth, region string) *types.ServerGroup {
	instances := make([]*types.Instance, 0, len(asg.Instances))
	for _, inst := range asg.Instances {
		id := awssdk.ToString(inst.InstanceId)
		instances = append(instances, buildInstance(inst, details[id], attachments[id]))
	}

	sg := &types.ServerGroup{
		Name:           awssdk.ToString(asg.AutoScalingGroupName),
		Region:         region,
		CloudProvider:  "aws",
		Type:           "aws",
		Disabled:       launchSuspended(asg),
		Instances:      instances,
		InstanceCounts: countInstances(instances),
		SecurityGroups: securityGroupUnion(asg.Instances, details),
		LoadBalancers:  loadBalancerNames(asg),
		ProviderMetadata: map[string]any{
			"minSize":         awssdk.ToInt32(asg.MinSize),
			"maxSize":         awssdk.ToInt32(asg.MaxSize),
			"desiredCapacity": awssdk.ToInt32(asg.DesiredCapacity),
		},
	}
	if asg.CreatedTime != nil {
		sg.CreatedTime = asg.CreatedTime.UnixMilli()
	}
	if asg.LaunchTemplate != nil {
		sg.ProviderMetadata["launchTemplate"] = awssdk.ToString(asg.LaunchTemplate.LaunchTemplateName)
	}

	if tags := convertTags(asg.Tags); len(tags) > 0 {
		sg.Tags = tags
	}
	if vpc := firstVpcID(asg.Instances, details); vpc != "" {
		sg.VpcID = &vpc
	}
	if instanceType := firstInstanceType(asg.Instances, details); instanceType != "" {
		sg.LaunchConfig = &types.LaunchConfig{InstanceType: instanceType}
	}
	return sg
}

func buildInstance(inst autoscalingtypes.Instance, detail instanceDetail, attachments []types.LoadBalancerHealth) *types.Instance {
	state := healthStateOf(inst)

	health := []types.HealthRecord{
		{Type: "Amazon", State: state.String()},
	}
	if len(attachments) > 0 {
		health = append(health, types.HealthRecord{
			Type:          types.LoadBalancerHealthType,
			LoadBalancers: attachments,
		})
	}

	zone := awssdk.ToString(inst.AvailabilityZone)
	if zone == "" {
		zone = detail.Zone
	}

	return &types.Instance{
		Name:        awssdk.ToString(inst.InstanceId),
		HealthState: state,
		LaunchTime:  detail.LaunchTime,
		Zone:        zone,
		Health:      health,
	}
}

func healthStateOf(inst autoscalingtypes.Instance) types.HealthState {
	switch inst.LifecycleState {
	case autoscalingtypes.LifecycleStatePending,
		autoscalingtypes.LifecycleStatePendingWait,
		autoscalingtypes.LifecycleStatePendingProceed:
		return types.HealthStarting
	case autoscalingtypes.LifecycleStateStandby:
		return types.HealthOutOfService
	}

	switch awssdk.ToString(inst.HealthStatus) {
	case "Healthy":
		return types.HealthUp
	case "Unhealthy":
		return types.HealthDown
	default:
		return types.HealthUnknown
	}
}

func countInstances(instances []*types.Instance) types.InstanceCounts {
	counts := types.InstanceCounts{Total: len(instances)}
	for _, inst := range instances {
		switch inst.HealthState {
		case types.HealthUp:
			counts.Up++
		case types.HealthDown:
			counts.Down++
		case types.HealthStarting:
			counts.Starting++
		case types.HealthOutOfService:
			counts.OutOfService++
		default:
			counts.Unknown++
		}
	}
	return counts
}

func launchSuspended(asg autoscalingtypes.AutoScalingGroup) bool {
	for _, proc := range asg.SuspendedProcesses {
		if awssdk.ToString(proc.ProcessName) == "Launch" {
			return true
		}
	}
	return false
}

func loadBalancerNames(asg autoscalingtypes.AutoScalingGroup) []string {
	lbs := make([]string, 0, len(asg.LoadBalancerNames)+len(asg.TargetGroupARNs))
	lbs = append(lbs, asg.LoadBalancerNames...)
	for _, arn := range asg.TargetGroupARNs {
		lbs = append(lbs, targetGroupName(arn))
	}
	return lbs
}

// targetGroupName extracts the group name from
// arn:aws:elasticloadbalancing:...:targetgroup/<name>/<id>.
func targetGroupName(arn string) string {
	parts := strings.Split(arn, "/")
	if len(parts) >= 2 {
		return parts[1]
	}
	return arn
}

func convertTags(tags []autoscalingtypes.TagDescription) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	converted := make(map[string]string, len(tags))
	for _, tag := range tags {
		converted[awssdk.ToString(tag.Key)] = awssdk.ToString(tag.Value)
	}
	return converted
}

func securityGroupUnion(instances []autoscalingtypes.Instance, details map[string]instanceDetail) []string {
	seen := make(map[string]struct{})
	for _, inst := range instances {
		for _, group := range details[awssdk.ToString(inst.InstanceId)].SecurityGroups {
			seen[group] = struct{}{}
		}
	}
	groups := make([]string, 0, len(seen))
	for group := range seen {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

func firstVpcID(instances []autoscalingtypes.Instance, details map[string]instanceDetail) string {
	for _, inst := range instances {
		if vpc := details[awssdk.ToString(inst.InstanceId)].VpcID; vpc != "" {
			return vpc
		}
	}
	return ""
}

func firstInstanceType(instances []autoscalingtypes.Instance, details map[string]instanceDetail) string {
	for _, inst := range instances {
		if t := details[awssdk.ToString(inst.InstanceId)].InstanceType; t != "" {
			return t
		}
	}
	return ""
}
