package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetview/fleetview/types"
)

func seeded() *Source {
	return New("aws").AddCluster("myapp", types.Cluster{
		Name:        "myapp-prod",
		AccountName: "prod",
		ServerGroups: []*types.ServerGroup{
			{Name: "myapp-prod-v001", Region: "us-east-1", CloudProvider: "aws"},
		},
	})
}

func TestSource_GetServerGroup(t *testing.T) {
	src := seeded()

	sg, err := src.GetServerGroup(context.Background(), "prod", "us-east-1", "myapp-prod-v001")
	require.NoError(t, err)
	require.NotNil(t, sg)
	assert.Equal(t, "myapp-prod-v001", sg.Name)
}

func TestSource_GetServerGroup_Absent(t *testing.T) {
	src := seeded()

	tests := []struct {
		name    string
		account string
		region  string
		sg      string
	}{
		{"wrong account", "staging", "us-east-1", "myapp-prod-v001"},
		{"wrong region", "prod", "eu-west-1", "myapp-prod-v001"},
		{"wrong name", "prod", "us-east-1", "myapp-prod-v999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sg, err := src.GetServerGroup(context.Background(), tt.account, tt.region, tt.sg)
			require.NoError(t, err)
			assert.Nil(t, sg)
		})
	}
}

func TestSource_ListClusters(t *testing.T) {
	src := seeded()

	clusters, err := src.ListClusters(context.Background(), "myapp")
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, "prod", clusters["myapp-prod"].AccountName)

	clusters, err = src.ListClusters(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, clusters)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aws.json")
	fixture := `{
		"cloudProvider": "aws",
		"applications": {
			"myapp": [
				{
					"name": "myapp-prod",
					"accountName": "prod",
					"serverGroups": [
						{"name": "myapp-prod-v001", "region": "us-east-1", "cloudProvider": "aws"}
					]
				}
			]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	src, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "aws", src.CloudProviderID())

	sg, err := src.GetServerGroup(context.Background(), "prod", "us-east-1", "myapp-prod-v001")
	require.NoError(t, err)
	require.NotNil(t, sg)
}

func TestLoadFile_MissingCloudProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"applications": {}}`), 0o600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "cloudProvider is required")
}
