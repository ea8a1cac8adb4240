package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetview/fleetview/providers"
	"github.com/fleetview/fleetview/providers/static"
	"github.com/fleetview/fleetview/types"
	"github.com/fleetview/fleetview/views"
)

func fixtureSource() *static.Source {
	vpc := "vpc-123"
	return static.New("aws").
		AddCluster("myapp", types.Cluster{
			Name:        "myapp-prod-canary",
			AccountName: "prod",
			ServerGroups: []*types.ServerGroup{
				{
					Name:          "myapp-prod-canary-v001",
					Region:        "us-east-1",
					CloudProvider: "aws",
					Type:          "aws",
					CreatedTime:   1700000000000,
					VpcID:         &vpc,
					Instances: []*types.Instance{
						{Name: "i-abc123", HealthState: types.HealthUp, Zone: "us-east-1a"},
					},
					InstanceCounts: types.InstanceCounts{Total: 1, Up: 1},
				},
				{
					Name:          "myapp-prod-canary-v002",
					Region:        "us-east-1",
					CloudProvider: "aws",
					Type:          "aws",
					CreatedTime:   1700000100000,
				},
			},
		}).
		AddCluster("myapp", types.Cluster{
			Name:        "myapp-staging",
			AccountName: "staging",
		})
}

func TestAssembler_Summaries(t *testing.T) {
	a := NewAssembler([]providers.Source{fixtureSource()})

	summaries, err := a.Summaries(context.Background(), "myapp", "")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "myapp-prod-canary-v001", summaries[0].Name)
	assert.Equal(t, "myapp-prod-canary-v002", summaries[1].Name)
	assert.Equal(t, "prod", summaries[0].Account)
	assert.Equal(t, "myapp-prod-canary", summaries[0].Cluster)
	require.NotNil(t, summaries[0].VpcID)
	assert.Equal(t, "vpc-123", *summaries[0].VpcID)
	assert.Nil(t, summaries[1].VpcID)
}

func TestAssembler_Summaries_EmptyClusterContributesNothing(t *testing.T) {
	src := static.New("aws").AddCluster("myapp", types.Cluster{
		Name:        "myapp-empty",
		AccountName: "prod",
	})
	a := NewAssembler([]providers.Source{src})

	summaries, err := a.Summaries(context.Background(), "myapp", "")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestAssembler_Summaries_Idempotent(t *testing.T) {
	a := NewAssembler([]providers.Source{fixtureSource()})

	first, err := a.Summaries(context.Background(), "myapp", "")
	require.NoError(t, err)
	second, err := a.Summaries(context.Background(), "myapp", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssembler_Expanded(t *testing.T) {
	a := NewAssembler([]providers.Source{fixtureSource()})

	records, err := a.Expanded(context.Background(), "myapp", "")
	require.NoError(t, err)
	require.Len(t, records, 2)

	rec := records[0]
	assert.Equal(t, "myapp-prod-canary-v001", rec["name"])
	assert.Equal(t, "prod", rec["accountName"])
	assert.Equal(t, "myapp", rec["application"])
	assert.Equal(t, "prod", rec["stack"])
	assert.Equal(t, "canary", rec["detail"])
	assert.Equal(t, "myapp-prod-canary", rec["cluster"])

	// Provider-specific fields the summary view keeps optional survive here.
	assert.Equal(t, "vpc-123", rec["vpcId"])
	assert.Contains(t, rec, "instances")
}

func TestAssembler_Expanded_RecorderErrorWrapped(t *testing.T) {
	boom := errors.New("cycle detected")
	a := NewAssembler([]providers.Source{fixtureSource()}).
		WithOpenRecorder(func(any) (map[string]any, error) {
			return nil, boom
		})

	_, err := a.Expanded(context.Background(), "myapp", "")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "myapp-prod-canary-v001")
}

func TestAssembler_List_Dispatch(t *testing.T) {
	a := NewAssembler([]providers.Source{fixtureSource()})

	t.Run("summary mode", func(t *testing.T) {
		entries, err := a.List(context.Background(), "myapp", ListOptions{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		_, ok := entries[0].(views.ServerGroupSummary)
		assert.True(t, ok, "summary mode emits strict views")
	})

	t.Run("expanded mode", func(t *testing.T) {
		entries, err := a.List(context.Background(), "myapp", ListOptions{Expand: true})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		_, ok := entries[0].(map[string]any)
		assert.True(t, ok, "expanded mode emits open records")
	})

	t.Run("cloud provider filter applies in both modes", func(t *testing.T) {
		entries, err := a.List(context.Background(), "myapp", ListOptions{CloudProvider: "gcp"})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestAssembler_Lookup(t *testing.T) {
	a := NewAssembler([]providers.Source{fixtureSource()})

	sg, err := a.Lookup(context.Background(), "prod", "us-east-1", "myapp-prod-canary-v001")
	require.NoError(t, err)
	assert.Equal(t, "myapp-prod-canary-v001", sg.Name)

	_, err = a.Lookup(context.Background(), "prod", "us-east-1", "missing-v001")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestJSONOpenRecorder(t *testing.T) {
	sg := &types.ServerGroup{
		Name:          "myapp-prod-v003",
		Region:        "us-east-1",
		CloudProvider: "aws",
	}

	record, err := JSONOpenRecorder(sg)
	require.NoError(t, err)
	assert.Equal(t, "myapp-prod-v003", record["name"])
	assert.Equal(t, "us-east-1", record["region"])
	assert.NotContains(t, record, "vpcId")
}
