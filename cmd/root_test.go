package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanm/devrig/internal/config"
)

func resetGlobalFlags() {
	profile = ""
	region = ""
}

func TestInitConfigDevrigEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEVRIG_PROFILE", "sandbox")
	t.Setenv("DEVRIG_REGION", "eu-west-1")
	t.Setenv("AWS_PROFILE", "should-lose")
	t.Setenv("AWS_REGION", "should-lose-too")
	resetGlobalFlags()

	initConfig()

	assert.Equal(t, "sandbox", GetProfile())
	assert.Equal(t, "eu-west-1", GetRegion())
}

func TestInitConfigAWSEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEVRIG_PROFILE", "")
	t.Setenv("DEVRIG_REGION", "")
	t.Setenv("AWS_PROFILE", "legacy")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "us-east-2")
	resetGlobalFlags()

	initConfig()

	assert.Equal(t, "legacy", GetProfile())
	assert.Equal(t, "us-east-2", GetRegion())
}

func TestInitConfigSavedProfileBeatsAWSEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEVRIG_PROFILE", "")
	t.Setenv("AWS_PROFILE", "legacy")
	require.NoError(t, config.SaveConfig(&config.Config{AWSProfile: "from-file"}))
	resetGlobalFlags()

	initConfig()

	assert.Equal(t, "from-file", GetProfile())
}
