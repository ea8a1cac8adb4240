package views

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetview/fleetview/types"
)

func testCluster() *types.Cluster {
	return &types.Cluster{Name: "myapp-prod", AccountName: "prod"}
}

func testServerGroup() *types.ServerGroup {
	return &types.ServerGroup{
		Name:          "myapp-prod-v003",
		Region:        "us-east-1",
		CloudProvider: "aws",
		Type:          "aws",
		CreatedTime:   1700000000000,
		Instances: []*types.Instance{
			{Name: "i-abc123", HealthState: types.HealthUp, Zone: "us-east-1a"},
		},
		InstanceCounts: types.InstanceCounts{Total: 1, Up: 1},
		SecurityGroups: []string{"sg-1"},
		LoadBalancers:  []string{"myapp-elb"},
	}
}

func TestProjectServerGroup_RequiredFields(t *testing.T) {
	view := ProjectServerGroup(testServerGroup(), testCluster())

	assert.Equal(t, "myapp-prod-v003", view.Name)
	assert.Equal(t, "prod", view.Account)
	assert.Equal(t, "myapp-prod", view.Cluster)
	assert.Equal(t, "us-east-1", view.Region)
	assert.Equal(t, "aws", view.CloudProvider)
	assert.Equal(t, int64(1700000000000), view.CreatedTime)
	assert.False(t, view.IsDisabled)
	assert.Equal(t, []string{"sg-1"}, view.SecurityGroups)
	assert.Equal(t, []string{"myapp-elb"}, view.LoadBalancers)
	require.Len(t, view.Instances, 1)
	assert.Equal(t, "Up", view.Instances[0].HealthState)
}

func TestProjectServerGroup_OptionalFieldsOmitted(t *testing.T) {
	view := ProjectServerGroup(testServerGroup(), testCluster())

	data, err := json.Marshal(view)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"vpcId", "tags", "buildInfo", "providerMetadata", "instanceType"} {
		assert.NotContains(t, raw, key)
	}
}

func TestProjectServerGroup_OptionalFieldsCopied(t *testing.T) {
	vpc := "vpc-123"
	sg := testServerGroup()
	sg.VpcID = &vpc
	sg.Tags = map[string]string{"team": "web"}
	sg.BuildInfo = map[string]any{"jenkins": map[string]any{"number": "42"}}
	sg.ProviderMetadata = map[string]any{"minSize": 2}
	sg.LaunchConfig = &types.LaunchConfig{InstanceType: "m5.large"}

	view := ProjectServerGroup(sg, testCluster())

	require.NotNil(t, view.VpcID)
	assert.Equal(t, "vpc-123", *view.VpcID)
	assert.Equal(t, map[string]string{"team": "web"}, view.Tags)
	assert.Equal(t, sg.BuildInfo, view.BuildInfo)
	assert.Equal(t, sg.ProviderMetadata, view.ProviderMetadata)
	assert.Equal(t, "m5.large", view.InstanceType)
}

func TestProjectServerGroup_LaunchConfigWithoutInstanceType(t *testing.T) {
	sg := testServerGroup()
	sg.LaunchConfig = &types.LaunchConfig{}

	view := ProjectServerGroup(sg, testCluster())
	assert.Empty(t, view.InstanceType)
}

func TestProjectServerGroup_EmptyTagsOmitted(t *testing.T) {
	sg := testServerGroup()
	sg.Tags = map[string]string{}

	view := ProjectServerGroup(sg, testCluster())
	assert.Nil(t, view.Tags)
}

func TestProjectServerGroup_NilInstancesSkipped(t *testing.T) {
	sg := testServerGroup()
	sg.Instances = []*types.Instance{
		nil,
		{Name: "i-abc123", HealthState: types.HealthUp},
		nil,
	}

	view := ProjectServerGroup(sg, testCluster())
	require.Len(t, view.Instances, 1)
	assert.Equal(t, "i-abc123", view.Instances[0].Name)
}

func TestProjectServerGroup_Idempotent(t *testing.T) {
	sg := testServerGroup()
	cluster := testCluster()

	first := ProjectServerGroup(sg, cluster)
	second := ProjectServerGroup(sg, cluster)
	assert.Equal(t, first, second)
}

func TestProjectInstance_PlainHealthRecord(t *testing.T) {
	inst := &types.Instance{
		Name:        "i-abc123",
		HealthState: types.HealthUnknown,
		Health: []types.HealthRecord{
			{Type: "Amazon", State: "Unknown"},
		},
	}

	view := ProjectInstance(inst)
	require.Len(t, view.Health, 1)

	data, err := json.Marshal(view.Health[0])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "Amazon", raw["type"])
	assert.Equal(t, "Unknown", raw["state"])
	assert.NotContains(t, raw, "status")
	assert.NotContains(t, raw, "loadBalancers")
}

func TestProjectInstance_LoadBalancerHealthRecord(t *testing.T) {
	inst := &types.Instance{
		Name:        "i-abc123",
		HealthState: types.HealthUp,
		Health: []types.HealthRecord{
			{
				Type: types.LoadBalancerHealthType,
				LoadBalancers: []types.LoadBalancerHealth{
					{LoadBalancerName: "lb1", State: "InService", HealthState: "Up"},
				},
			},
		},
	}

	view := ProjectInstance(inst)
	require.Len(t, view.Health, 1)
	require.Len(t, view.Health[0].LoadBalancers, 1)

	lb := view.Health[0].LoadBalancers[0]
	assert.Equal(t, "lb1", lb.Name)
	assert.Equal(t, "InService", lb.State)
	assert.Equal(t, "Up", lb.HealthState)
}

func TestProjectInstance_LoadBalancersIgnoredOnOtherKinds(t *testing.T) {
	inst := &types.Instance{
		Name:        "i-abc123",
		HealthState: types.HealthUp,
		Health: []types.HealthRecord{
			{
				Type: "Discovery",
				LoadBalancers: []types.LoadBalancerHealth{
					{LoadBalancerName: "lb1"},
				},
			},
		},
	}

	view := ProjectInstance(inst)
	require.Len(t, view.Health, 1)
	assert.Nil(t, view.Health[0].LoadBalancers)
}
