package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hoanm/devrig/internal/aws"
	"github.com/hoanm/devrig/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show identity, rig instances and autoscaler ASGs",
	Long: `Display the current AWS identity, the instances belonging to the rig,
and the Auto Scaling Groups tagged for cluster-autoscaler discovery.

Examples:
  devrig status
  devrig status --name perf`,
	RunE: runStatus,
}

var statusRigName string

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusRigName, "name", "dev", "Rig name")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	fmt.Println(ui.HeaderStyle.Render("Current Status"))
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	// Try to get caller identity
	fmt.Print("Auth:     ")
	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		fmt.Println(ui.FailStyle.Render("✗ Not authenticated"))
		fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
		fmt.Println()
		fmt.Println("To authenticate:")
		fmt.Printf("  aws sso login --profile %s\n", GetProfile())
		return nil
	}

	fmt.Println(ui.OKStyle.Render("✓ Authenticated"))
	fmt.Printf("Account:  %s\n", identity.Account)
	fmt.Printf("User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}
	fmt.Println()

	// Rig instances
	instances, err := client.ListRigInstances(ctx, statusRigName)
	if err != nil {
		return fmt.Errorf("failed to list rig instances: %w", err)
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	fmt.Printf("Rig %s\n", ui.NameStyle.Render(statusRigName))
	if len(instances) == 0 {
		fmt.Println(ui.MutedStyle.Render("  no instances, run 'devrig up'"))
	} else {
		tbl := table.New("ID", "Name", "Public IP", "Private IP", "State", "Type", "AZ")
		tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
		tbl.WithWriter(os.Stdout)

		for _, inst := range instances {
			tbl.AddRow(
				inst.ID,
				ui.Truncate(inst.Name, 30),
				inst.PublicIP,
				inst.PrivateIP,
				inst.State,
				inst.Type,
				inst.AZ,
			)
		}
		tbl.Print()
	}
	fmt.Println()

	// Autoscaler-managed groups
	groups, err := client.ListAutoscalerGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list autoscaler groups: %w", err)
	}

	fmt.Println(ui.HeaderStyle.Render("Autoscaler ASGs"))
	if len(groups) == 0 {
		fmt.Println(ui.MutedStyle.Render("  none tagged with k8s.io/cluster-autoscaler/enabled"))
		return nil
	}

	tbl := table.New("Name", "Desired", "Min", "Max", "Running", "AZs")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	tbl.WithWriter(os.Stdout)

	for _, g := range groups {
		tbl.AddRow(
			ui.Truncate(g.Name, 40),
			g.DesiredCapacity,
			g.MinSize,
			g.MaxSize,
			g.InstanceCount,
			len(g.AZs),
		)
	}
	tbl.Print()

	return nil
}
