package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoanm/devrig/internal/aws"
	"github.com/hoanm/devrig/internal/config"
	"github.com/hoanm/devrig/internal/ui"
	"github.com/hoanm/devrig/internal/velero"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Cluster-migration demo helpers",
}

var demoCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove everything the migration demo created",
	Long: `Delete the migration demo resources in a fixed sequence: the Velero
install (via kubectl), the demo IAM user, both EKS clusters, the ECR
repository and the S3 backup bucket.

Each step tolerates resources that are already gone, so the command can
be re-run after a partial failure.

Examples:
  devrig demo cleanup
  devrig demo cleanup --primary source-cluster --recovery target-cluster`,
	RunE: runDemoCleanup,
}

var (
	// demo cleanup flags
	demoPrimary  string
	demoRecovery string
	demoUser     string
	demoRepo     string
	demoBucket   string
	demoForce    bool
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.AddCommand(demoCleanupCmd)

	demoCleanupCmd.Flags().StringVar(&demoPrimary, "primary", "", "Primary EKS cluster name")
	demoCleanupCmd.Flags().StringVar(&demoRecovery, "recovery", "", "Recovery EKS cluster name")
	demoCleanupCmd.Flags().StringVar(&demoUser, "user", "", "Demo IAM user name")
	demoCleanupCmd.Flags().StringVar(&demoRepo, "repo", "", "ECR repository name")
	demoCleanupCmd.Flags().StringVar(&demoBucket, "bucket", "", "S3 backup bucket name")
	demoCleanupCmd.Flags().BoolVar(&demoForce, "force", false, "Skip the confirmation prompt")
}

func runDemoCleanup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// flags win over config file defaults
	primary := firstNonEmpty(demoPrimary, cfg.PrimaryCluster, "migration-primary")
	recovery := firstNonEmpty(demoRecovery, cfg.RecoveryCluster, "migration-recovery")
	user := firstNonEmpty(demoUser, cfg.DemoUser, "velero")
	repo := firstNonEmpty(demoRepo, cfg.DemoRepository, "migration-demo")
	bucket := firstNonEmpty(demoBucket, cfg.DemoBucket, "")

	if bucket == "" {
		return fmt.Errorf("no backup bucket configured, pass --bucket or set demo_bucket in %s", config.GetConfigPath())
	}

	if !demoForce {
		confirmed, err := ui.Confirm(fmt.Sprintf(
			"Delete clusters %q and %q, user %q, repo %q and bucket %q?",
			primary, recovery, user, repo, bucket))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	fmt.Println("Cleaning up migration demo")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))

	failed := 0
	step := func(what string, fn func() error) {
		fmt.Printf("  %s... ", what)
		err := fn()
		switch {
		case err == nil:
			fmt.Println(ui.OKStyle.Render("done"))
		case aws.IsNotFound(err):
			fmt.Println(ui.MutedStyle.Render("already gone"))
		default:
			failed++
			fmt.Println(ui.FailStyle.Render("failed"))
			fmt.Fprintf(os.Stderr, "    %s\n", ui.WarnStyle.Render(err.Error()))
		}
	}

	// without kubectl only the in-cluster resources are out of reach, the
	// AWS side can still be cleaned up
	if velero.KubectlAvailable() {
		step("remove velero from current cluster", func() error {
			return velero.Cleanup(ctx, "")
		})
	} else {
		fmt.Fprintf(os.Stderr, "  %s\n", ui.WarnStyle.Render("! kubectl not on PATH, skipping velero cleanup"))
	}

	step("delete IAM user "+user, func() error {
		return client.DeleteUser(ctx, user)
	})

	step("delete EKS cluster "+primary, func() error {
		return client.DeleteEKSCluster(ctx, primary)
	})

	step("delete EKS cluster "+recovery, func() error {
		return client.DeleteEKSCluster(ctx, recovery)
	})

	step("delete ECR repository "+repo, func() error {
		return client.DeleteRepository(ctx, repo)
	})

	step("delete S3 bucket "+bucket, func() error {
		return client.DeleteBucket(ctx, bucket)
	})

	if failed > 0 {
		return fmt.Errorf("%d cleanup step(s) failed, re-run once the cause is fixed", failed)
	}

	fmt.Println()
	fmt.Println(ui.OKStyle.Render("✓ Demo resources removed"))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
