// Package aws implements a provider source backed by EC2 Auto Scaling
// groups. One Source serves one account/region pair.
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/fleetview/fleetview/names"
	"github.com/fleetview/fleetview/telemetry"
	"github.com/fleetview/fleetview/types"
)

// Config identifies the account and region a Source serves.
type Config struct {
	Account string
	Region  string
}

// Source implements providers.Source for AWS.
type Source struct {
	asgClient *autoscaling.Client
	ec2Client *ec2.Client
	elbClient *elasticloadbalancingv2.Client
	account   string
	region    string
	logger    *telemetry.Logger
}

// New creates a Source using the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Source, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Source{
		asgClient: autoscaling.NewFromConfig(awsCfg),
		ec2Client: ec2.NewFromConfig(awsCfg),
		elbClient: elasticloadbalancingv2.NewFromConfig(awsCfg),
		account:   cfg.Account,
		region:    cfg.Region,
		logger:    telemetry.NewLogger("providers.aws"),
	}, nil
}

// CloudProviderID implements providers.Source.
func (s *Source) CloudProviderID() string {
	return "aws"
}

// GetServerGroup implements providers.Source. Keys outside this source's
// account/region are absent by definition, not an error.
func (s *Source) GetServerGroup(ctx context.Context, account, region, name string) (*types.ServerGroup, error) {
	if account != s.account || region != s.region {
		return nil, nil
	}

	out, err := s.asgClient.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{name},
	})
	if err != nil {
		return nil, fmt.Errorf("describe auto scaling group %s: %w", name, err)
	}
	if len(out.AutoScalingGroups) == 0 {
		return nil, nil
	}

	return s.buildServerGroup(ctx, out.AutoScalingGroups[0])
}

// ListClusters implements providers.Source. Auto Scaling groups are grouped
// into clusters by the naming convention parsed from their names.
func (s *Source) ListClusters(ctx context.Context, application string) (map[string]types.Cluster, error) {
	groups, err := s.describeAllGroups(ctx)
	if err != nil {
		return nil, err
	}

	clusters := make(map[string]types.Cluster)
	for _, asg := range groups {
		parsed := names.Parse(awssdk.ToString(asg.AutoScalingGroupName))
		if parsed.Application != application {
			continue
		}

		sg, err := s.buildServerGroup(ctx, asg)
		if err != nil {
			return nil, err
		}

		cluster := clusters[parsed.Cluster]
		cluster.Name = parsed.Cluster
		cluster.AccountName = s.account
		cluster.ServerGroups = append(cluster.ServerGroups, sg)
		clusters[parsed.Cluster] = cluster
	}

	s.logger.WithContext(ctx).Debug().
		Str("application", application).
		Int("clusters", len(clusters)).
		Msg("listed auto scaling clusters")

	if len(clusters) == 0 {
		return nil, nil
	}
	return clusters, nil
}

func (s *Source) describeAllGroups(ctx context.Context) ([]autoscalingtypes.AutoScalingGroup, error) {
	var groups []autoscalingtypes.AutoScalingGroup
	var nextToken *string

	for {
		out, err := s.asgClient.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("describe auto scaling groups: %w", err)
		}
		groups = append(groups, out.AutoScalingGroups...)
		if out.NextToken == nil {
			return groups, nil
		}
		nextToken = out.NextToken
	}
}

func (s *Source) buildServerGroup(ctx context.Context, asg autoscalingtypes.AutoScalingGroup) (*types.ServerGroup, error) {
	details, err := s.describeInstanceDetails(ctx, asg.Instances)
	if err != nil {
		return nil, err
	}

	attachments, err := s.describeTargetHealth(ctx, asg.TargetGroupARNs)
	if err != nil {
		return nil, err
	}

	return buildServerGroup(asg, details, attachments, s.region), nil
}
