package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/fleetview/fleetview/types"
)

// describeInstanceDetails joins EC2 detail onto the group's instances,
// keyed by instance ID.
func (s *Source) describeInstanceDetails(ctx context.Context, instances []autoscalingtypes.Instance) (map[string]instanceDetail, error) {
	if len(instances) == 0 {
		return map[string]instanceDetail{}, nil
	}

	ids := make([]string, 0, len(instances))
	for _, inst := range instances {
		ids = append(ids, awssdk.ToString(inst.InstanceId))
	}

	details := make(map[string]instanceDetail, len(ids))
	var nextToken *string
	for {
		out, err := s.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			InstanceIds: ids,
			NextToken:   nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, reservation := range out.Reservations {
			for _, inst := range reservation.Instances {
				details[awssdk.ToString(inst.InstanceId)] = buildInstanceDetail(inst)
			}
		}
		if out.NextToken == nil {
			return details, nil
		}
		nextToken = out.NextToken
	}
}

func buildInstanceDetail(inst ec2types.Instance) instanceDetail {
	detail := instanceDetail{
		VpcID:        awssdk.ToString(inst.VpcId),
		InstanceType: string(inst.InstanceType),
	}
	if inst.LaunchTime != nil {
		detail.LaunchTime = inst.LaunchTime.UnixMilli()
	}
	if inst.Placement != nil {
		detail.Zone = awssdk.ToString(inst.Placement.AvailabilityZone)
	}
	for _, group := range inst.SecurityGroups {
		detail.SecurityGroups = append(detail.SecurityGroups, awssdk.ToString(group.GroupId))
	}
	return detail
}

// describeTargetHealth collects load balancer attachment health per instance
// across the group's target groups.
func (s *Source) describeTargetHealth(ctx context.Context, targetGroupARNs []string) (map[string][]types.LoadBalancerHealth, error) {
	attachments := make(map[string][]types.LoadBalancerHealth)
	for _, arn := range targetGroupARNs {
		out, err := s.elbClient.DescribeTargetHealth(ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
			TargetGroupArn: awssdk.String(arn),
		})
		if err != nil {
			return nil, fmt.Errorf("describe target health for %s: %w", targetGroupName(arn), err)
		}

		for _, desc := range out.TargetHealthDescriptions {
			if desc.Target == nil || desc.TargetHealth == nil {
				continue
			}
			id := awssdk.ToString(desc.Target.Id)
			attachments[id] = append(attachments[id], types.LoadBalancerHealth{
				LoadBalancerName: targetGroupName(arn),
				State:            string(desc.TargetHealth.State),
				Description:      awssdk.ToString(desc.TargetHealth.Description),
				HealthState:      targetHealthState(desc.TargetHealth.State).String(),
				LoadBalancerType: "targetGroup",
			})
		}
	}
	return attachments, nil
}

func targetHealthState(state elbv2types.TargetHealthStateEnum) types.HealthState {
	switch state {
	case elbv2types.TargetHealthStateEnumHealthy:
		return types.HealthUp
	case elbv2types.TargetHealthStateEnumUnhealthy:
		return types.HealthDown
	case elbv2types.TargetHealthStateEnumInitial:
		return types.HealthStarting
	case elbv2types.TargetHealthStateEnumDraining, elbv2types.TargetHealthStateEnumUnused:
		return types.HealthOutOfService
	default:
		return types.HealthUnknown
	}
}
