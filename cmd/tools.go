package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/hoanm/devrig/internal/installer"
	"github.com/hoanm/devrig/internal/ui"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Manage local developer tooling",
	Long: `Install and check the local tools the autoscaler workflow expects:
go, kubectl, kind, helm, eksctl and the AWS CLI.

Examples:
  devrig tools check
  devrig tools install`,
}

var toolsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install missing developer tools",
	Long: `Install every tool that is not already on PATH. Tools that are
present are skipped, so running this twice performs no redundant work.

Examples:
  devrig tools install`,
	RunE: runToolsInstall,
}

var toolsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which developer tools are installed",
	RunE:  runToolsCheck,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.AddCommand(toolsInstallCmd)
	toolsCmd.AddCommand(toolsCheckCmd)
}

func runToolsInstall(cmd *cobra.Command, args []string) error {
	platform := installer.Detect()
	fmt.Printf("Platform: %s\n\n", platform)

	statuses, err := installer.New(platform).Install(context.Background())

	for _, status := range statuses {
		switch {
		case status.Installed:
			fmt.Printf("  %s %s\n", ui.OKStyle.Render("✓ installed"), status.Name)
		case status.Present:
			fmt.Printf("  %s  %s %s\n", ui.MutedStyle.Render("- present"), ui.PadRight(status.Name, 8), ui.MutedStyle.Render(status.Path))
		}
	}

	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(ui.OKStyle.Render("✓ All tools available"))
	return nil
}

func runToolsCheck(cmd *cobra.Command, args []string) error {
	platform := installer.Detect()
	statuses := installer.New(platform).Check()

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("Tool", "Binary", "Status", "Path")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	tbl.WithWriter(os.Stdout)

	missing := 0
	for _, status := range statuses {
		state := ui.OKStyle.Render("installed")
		if !status.Present {
			state = ui.FailStyle.Render("missing")
			missing++
		}
		tbl.AddRow(status.Name, status.Bin, state, status.Path)
	}
	tbl.Print()

	if missing > 0 {
		fmt.Printf("\n%d tool(s) missing, run 'devrig tools install'\n", missing)
	}

	return nil
}
