package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hoanm/devrig/internal/config"
)

var (
	// Global flags
	profile string
	region  string
)

var rootCmd = &cobra.Command{
	Use:   "devrig",
	Short: "Devrig - AWS dev environment for the autoscaler workflow",
	Long: `Devrig provisions and tears down the AWS resources backing the
Kubernetes autoscaler development workflow, and installs the local
tooling that goes with it.

Provisioning:
  devrig up                     # IAM role, key pair, SG, EC2 instance
  devrig down                   # tear it all down again
  devrig status                 # identity, rig instances, autoscaler ASGs

Local tooling:
  devrig tools check            # report which tools are installed
  devrig tools install          # install go, kubectl, kind, helm, eksctl, awscli

Autoscaler inputs:
  devrig instance-types us-west-2 g6 m5   # generate instance_types.json

Migration demo:
  devrig demo cleanup           # velero, EKS clusters, ECR repo, S3 bucket`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables
	viper.SetEnvPrefix("DEVRIG")
	viper.AutomaticEnv()

	// Priority for profile: --profile flag > DEVRIG_PROFILE env >
	// ~/.devrig/config.yaml > AWS_PROFILE env
	profile = viper.GetString("profile")
	if profile == "" {
		if saved := config.GetSavedProfile(); saved != "" {
			profile = saved
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Priority for region: --region flag > DEVRIG_REGION env >
	// AWS_REGION env > AWS_DEFAULT_REGION env
	region = viper.GetString("region")
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}
