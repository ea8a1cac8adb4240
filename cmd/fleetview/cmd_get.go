package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetview/fleetview/catalog"
)

var getCmd = &cobra.Command{
	Use:     "get <account> <region> <name>",
	Short:   "Resolve one server group by exact key",
	Example: `  fleetview get prod us-east-1 myapp-prod-v003`,
	Args:    cobra.ExactArgs(3),
	RunE:    runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	account, region, name := args[0], args[1], args[2]

	sources, _, err := buildSources(ctx)
	if err != nil {
		return err
	}

	sg, err := catalog.NewAssembler(sources).Lookup(ctx, account, region, name)
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("server group %s not found in account %s region %s",
			notFound.Name, notFound.Account, notFound.Region)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sg)
}
