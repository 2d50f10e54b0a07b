package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStateMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	st, err := LoadState()
	require.NoError(t, err)
	assert.Empty(t, st.Rigs)
}

func TestRigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rig := &Rig{
		Name:            "dev",
		Region:          "us-west-2",
		RoleName:        "devrig-dev",
		PolicyArns:      []string{"arn:aws:iam::aws:policy/AmazonEC2FullAccess"},
		InstanceProfile: "devrig-dev",
		KeyName:         "devrig-dev",
		SecurityGroupID: "sg-0123456789abcdef0",
		InstanceID:      "i-0123456789abcdef0",
		CreatedAt:       time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, PutRig(rig))

	loaded, err := GetRig("dev")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rig, loaded)

	// unknown rig is nil, not an error
	missing, err := GetRig("perf")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, DeleteRig("dev"))

	gone, err := GetRig("dev")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPutRigKeepsOtherRigs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, PutRig(&Rig{Name: "dev"}))
	require.NoError(t, PutRig(&Rig{Name: "perf"}))

	st, err := LoadState()
	require.NoError(t, err)
	assert.Len(t, st.Rigs, 2)
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// missing file yields an empty config
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.AWSProfile)

	cfg.AWSProfile = "sandbox"
	cfg.PrimaryCluster = "migration-primary"
	cfg.DemoBucket = "velero-backups-123"
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, "sandbox", GetSavedProfile())
}
