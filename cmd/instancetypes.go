package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoanm/devrig/internal/aws"
	"github.com/hoanm/devrig/internal/catalog"
	"github.com/hoanm/devrig/internal/ui"
)

var instanceTypesCmd = &cobra.Command{
	Use:   "instance-types <region> <family>...",
	Short: "Generate an instance type catalog for the autoscaler",
	Long: `Expand instance families to concrete types and write a JSON catalog
with per-type resources, spot prices per availability zone and on-demand
prices, in the format the autoscaler under development consumes.

Examples:
  devrig instance-types us-west-2 g6 m5
  devrig instance-types eu-west-1 c7g --output c7g.json --workers 10`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInstanceTypes,
}

var (
	// instance-types flags
	catalogOutput  string
	catalogWorkers int
)

func init() {
	rootCmd.AddCommand(instanceTypesCmd)

	instanceTypesCmd.Flags().StringVarP(&catalogOutput, "output", "o", "instance_types.json", "Output file path")
	instanceTypesCmd.Flags().IntVarP(&catalogWorkers, "workers", "w", 5, "Number of concurrent workers")
}

func runInstanceTypes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	catalogRegion := args[0]
	families := args[1:]

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(catalogRegion),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	builder := &catalog.Builder{
		Client:  client,
		Region:  catalogRegion,
		Workers: catalogWorkers,
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "%s\n", ui.WarnStyle.Render(fmt.Sprintf(format, args...)))
		},
	}

	entries, err := builder.Build(ctx, families)
	if err != nil {
		return err
	}

	if err := catalog.Write(catalogOutput, entries); err != nil {
		return err
	}

	fmt.Printf("%s %d instance types written to %s\n",
		ui.OKStyle.Render("✓"), len(entries), catalogOutput)

	return nil
}
