package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetview/fleetview/catalog"
)

var (
	listCloudProvider string
	listExpand        bool
)

var listCmd = &cobra.Command{
	Use:   "list <application>",
	Short: "List server groups for an application across all providers",
	Example: `  fleetview list myapp                      # Summary views
  fleetview list myapp --expand             # Denormalized provider records
  fleetview list myapp --cloud-provider aws # Only AWS-backed sources`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCloudProvider, "cloud-provider", "", "Only include sources with this cloud provider ID")
	listCmd.Flags().BoolVar(&listExpand, "expand", false, "Emit the denormalized expanded view")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sources, _, err := buildSources(ctx)
	if err != nil {
		return err
	}

	entries, err := catalog.NewAssembler(sources).List(ctx, args[0], catalog.ListOptions{
		CloudProvider: listCloudProvider,
		Expand:        listExpand,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
