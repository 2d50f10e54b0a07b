package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoanm/devrig/internal/aws"
	"github.com/hoanm/devrig/internal/config"
	"github.com/hoanm/devrig/internal/ui"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Tear down the dev rig",
	Long: `Delete the rig's AWS resources in reverse dependency order:
instance, key pair, security group, instance profile, role.

Every step tolerates resources that are already gone, so 'down' can be
re-run after a partial failure and running it twice in a row is safe.

Examples:
  devrig down
  devrig down --name perf --force`,
	RunE: runDown,
}

var (
	// down flags
	downRigName string
	downForce   bool
)

func init() {
	rootCmd.AddCommand(downCmd)

	downCmd.Flags().StringVar(&downRigName, "name", "dev", "Rig name")
	downCmd.Flags().BoolVar(&downForce, "force", false, "Skip the confirmation prompt")
}

func runDown(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rig, err := config.GetRig(downRigName)
	if err != nil {
		return err
	}
	if rig == nil {
		// state was lost; fall back to conventional names so teardown
		// still works
		rig = &config.Rig{
			Name:            downRigName,
			RoleName:        "devrig-" + downRigName,
			InstanceProfile: "devrig-" + downRigName,
			KeyName:         "devrig-" + downRigName,
		}
		fmt.Println(ui.WarnStyle.Render("! No state for rig, falling back to tags and conventional names"))
	}

	if !downForce {
		confirmed, err := ui.Confirm(fmt.Sprintf("Tear down rig %q and delete its AWS resources?", downRigName))
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

	fmt.Printf("Tearing down rig %s\n", ui.NameStyle.Render(downRigName))
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

	// Instances first, everything else depends on them being gone
	step("terminate instance", func() error {
		ids := []string{}
		if rig.InstanceID != "" {
			ids = append(ids, rig.InstanceID)
		} else {
			instances, err := client.ListRigInstances(ctx, downRigName)
			if err != nil {
				return err
			}
			for _, inst := range instances {
				ids = append(ids, inst.ID)
			}
		}

		for _, id := range ids {
			if err := client.TerminateInstance(ctx, id); err != nil && !aws.IsNotFound(err) {
				return err
			}
		}
		return nil
	})

	step("delete key pair", func() error {
		return client.DeleteKeyPair(ctx, rig.KeyName)
	})

	if rig.KeyPath != "" {
		if err := os.Remove(rig.KeyPath); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "  %s\n", ui.WarnStyle.Render("could not remove "+rig.KeyPath))
		}
	}

	step("delete key secret", func() error {
		arns := []string{}
		if rig.KeySecretARN != "" {
			arns = append(arns, rig.KeySecretARN)
		} else {
			found, err := client.FindRigKeySecrets(ctx, downRigName)
			if err != nil {
				return err
			}
			arns = found
		}

		for _, arn := range arns {
			if err := client.DeleteKeySecret(ctx, arn); err != nil && !aws.IsNotFound(err) {
				return err
			}
		}
		return nil
	})

	step("delete security group", func() error {
		ids := []string{}
		if rig.SecurityGroupID != "" {
			ids = append(ids, rig.SecurityGroupID)
		} else {
			found, err := client.FindRigSecurityGroups(ctx, downRigName)
			if err != nil {
				return err
			}
			ids = found
		}

		for _, id := range ids {
			if err := client.DeleteSecurityGroup(ctx, id); err != nil && !aws.IsNotFound(err) {
				return err
			}
		}
		return nil
	})

	step("delete instance profile", func() error {
		return client.DeleteInstanceProfile(ctx, downRigName, rig.InstanceProfile)
	})

	step("delete role", func() error {
		return client.DeleteRole(ctx, downRigName, rig.RoleName)
	})

	if failed > 0 {
		return fmt.Errorf("%d teardown step(s) failed, re-run 'devrig down' once the cause is fixed", failed)
	}

	if err := config.DeleteRig(downRigName); err != nil {
		return fmt.Errorf("failed to update rig state: %w", err)
	}

	fmt.Println()
	fmt.Println(ui.OKStyle.Render("✓ Rig removed"))

	return nil
}
