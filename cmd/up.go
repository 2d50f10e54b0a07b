package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoanm/devrig/internal/aws"
	"github.com/hoanm/devrig/internal/config"
	"github.com/hoanm/devrig/internal/ui"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the dev rig",
	Long: `Provision the AWS resources for one dev rig: an IAM role with the
autoscaler dev policies, an instance profile, a key pair, a security
group with SSH ingress, and a single EC2 instance.

The created resource IDs are recorded in ~/.devrig/state.yaml so that
'devrig down' can reverse everything. Re-running 'up' for an existing
rig fails early instead of creating duplicates.

Examples:
  devrig up
  devrig up --name perf --instance-type m5.2xlarge
  devrig up --ssh-cidr 203.0.113.0/24 --store-key`,
	RunE: runUp,
}

var (
	// up flags
	upRigName      string
	upInstanceType string
	upAMI          string
	upVPCID        string
	upSubnetID     string
	upSSHCIDR      string
	upPolicyArns   []string
	upStoreKey     bool
)

// Managed policies the dev instance needs to run an autoscaler against
// the account.
var defaultPolicyArns = []string{
	"arn:aws:iam::aws:policy/AmazonEC2FullAccess",
	"arn:aws:iam::aws:policy/AutoScalingFullAccess",
	"arn:aws:iam::aws:policy/AmazonSSMManagedInstanceCore",
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().StringVar(&upRigName, "name", "dev", "Rig name, used in resource names and tags")
	upCmd.Flags().StringVar(&upInstanceType, "instance-type", "t3.large", "EC2 instance type")
	upCmd.Flags().StringVar(&upAMI, "ami", "", "AMI ID (default: latest Amazon Linux 2023)")
	upCmd.Flags().StringVar(&upVPCID, "vpc-id", "", "VPC for the security group (default: the default VPC)")
	upCmd.Flags().StringVar(&upSubnetID, "subnet-id", "", "Subnet to launch into (default: chosen by EC2)")
	upCmd.Flags().StringVar(&upSSHCIDR, "ssh-cidr", "0.0.0.0/0", "CIDR allowed to SSH to the instance")
	upCmd.Flags().StringSliceVar(&upPolicyArns, "policy-arn", nil, "Managed policy ARNs to attach (defaults to the autoscaler dev set)")
	upCmd.Flags().BoolVar(&upStoreKey, "store-key", false, "Also store the private key in Secrets Manager")
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	existing, err := config.GetRig(upRigName)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("rig %q already exists (instance %s), run 'devrig down --name %s' first",
			upRigName, existing.InstanceID, upRigName)
	}

	client, err := aws.NewClient(ctx,
		aws.WithProfile(GetProfile()),
		aws.WithRegion(GetRegion()),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	identity, err := client.GetCallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to get caller identity: %w", err)
	}

	fmt.Printf("Provisioning rig %s in account %s\n", ui.NameStyle.Render(upRigName), identity.Account)
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))

	rig := &config.Rig{
		Name:      upRigName,
		Region:    GetRegion(),
		CreatedAt: time.Now().UTC(),
	}

	policyArns := upPolicyArns
	if len(policyArns) == 0 {
		policyArns = defaultPolicyArns
	}

	// IAM role + policies
	roleName := "devrig-" + upRigName
	fmt.Printf("  IAM role          %s\n", roleName)
	if _, err := client.EnsureRole(ctx, upRigName, roleName, policyArns); err != nil {
		return err
	}
	rig.RoleName = roleName
	rig.PolicyArns = policyArns

	// Instance profile
	profileName := "devrig-" + upRigName
	fmt.Printf("  Instance profile  %s\n", profileName)
	if err := client.EnsureInstanceProfile(ctx, upRigName, profileName, roleName); err != nil {
		return err
	}
	rig.InstanceProfile = profileName

	// Key pair, private key saved locally
	keyName := "devrig-" + upRigName
	fmt.Printf("  Key pair          %s\n", keyName)
	pem, err := client.CreateKeyPair(ctx, upRigName, keyName)
	if aws.IsAlreadyExists(err) {
		// leftover from a partial run; the private key is only returned
		// at creation time, so the old pair is of no use
		if err := client.DeleteKeyPair(ctx, keyName); err != nil {
			return fmt.Errorf("failed to replace existing key pair %q: %w", keyName, err)
		}
		pem, err = client.CreateKeyPair(ctx, upRigName, keyName)
	}
	if err != nil {
		return err
	}
	rig.KeyName = keyName

	keyPath := filepath.Join(config.GetConfigDir(), keyName+".pem")
	if err := os.MkdirAll(config.GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(pem), 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	rig.KeyPath = keyPath

	if upStoreKey {
		secretARN, err := client.StoreKeySecret(ctx, upRigName, keyName+"-ssh-key", pem)
		if err != nil {
			return err
		}
		rig.KeySecretARN = secretARN
		fmt.Printf("  Key secret        %s\n", ui.MutedStyle.Render(secretARN))
	}

	// Security group
	vpcID := upVPCID
	if vpcID == "" {
		vpcID, err = client.DefaultVPC(ctx)
		if err != nil {
			return err
		}
	}

	sgName := "devrig-" + upRigName
	groupID, err := client.CreateSecurityGroup(ctx, upRigName, sgName, vpcID, upSSHCIDR)
	if aws.IsAlreadyExists(err) {
		// reuse the group a partial run left behind
		ids, ferr := client.FindRigSecurityGroups(ctx, upRigName)
		if ferr != nil {
			return ferr
		}
		if len(ids) == 0 {
			return fmt.Errorf("security group %q exists but is not tagged %s=%s, delete it manually", sgName, aws.RigTagKey, upRigName)
		}
		groupID = ids[0]
		err = nil
	}
	if err != nil {
		return err
	}
	rig.SecurityGroupID = groupID
	fmt.Printf("  Security group    %s\n", groupID)

	// AMI
	ami := upAMI
	if ami == "" {
		ami, err = client.LatestAL2023AMI(ctx, "x86_64")
		if err != nil {
			return err
		}
	}
	fmt.Printf("  AMI               %s\n", ami)

	// Instance profiles are eventually consistent; launching right after
	// creating one fails with an invalid-profile error
	time.Sleep(10 * time.Second)

	fmt.Printf("  Instance          launching %s, waiting for running...\n", upInstanceType)
	inst, err := client.LaunchInstance(ctx, &aws.LaunchInput{
		Rig:             upRigName,
		Name:            "devrig-" + upRigName,
		AMI:             ami,
		InstanceType:    upInstanceType,
		KeyName:         keyName,
		SecurityGroupID: groupID,
		InstanceProfile: profileName,
		SubnetID:        upSubnetID,
	})
	if err != nil {
		return err
	}
	rig.InstanceID = inst.ID

	if err := config.PutRig(rig); err != nil {
		return fmt.Errorf("failed to save rig state: %w", err)
	}

	addr := inst.PublicIP
	if addr == "" {
		addr = inst.PrivateIP
	}

	fmt.Println()
	fmt.Println(ui.OKStyle.Render("✓ Rig ready"))
	fmt.Printf("  Instance:   %s\n", ui.IDStyle.Render(inst.ID))
	fmt.Printf("  Public IP:  %s\n", inst.PublicIP)
	fmt.Printf("  Private IP: %s\n", inst.PrivateIP)
	fmt.Println()
	fmt.Printf("  ssh -i %s ec2-user@%s\n", keyPath, addr)

	return nil
}
