package velero

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	hasKubectl bool
	ran        [][]string
	failIndex  int // 1-based index of the call that fails, 0 = never
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	r.ran = append(r.ran, append([]string{name}, args...))
	if r.failIndex == len(r.ran) {
		return errors.New("exit status 1")
	}
	return nil
}

func (r *fakeRunner) LookPath(file string) (string, error) {
	if r.hasKubectl {
		return "/usr/local/bin/kubectl", nil
	}
	return "", errors.New("not found")
}

func TestKubectlAvailable(t *testing.T) {
	assert.True(t, kubectlAvailable(&fakeRunner{hasKubectl: true}))
	assert.False(t, kubectlAvailable(&fakeRunner{hasKubectl: false}))
}

func TestCleanupRequiresKubectl(t *testing.T) {
	runner := &fakeRunner{hasKubectl: false}

	err := cleanup(context.Background(), runner, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kubectl not found")
	assert.Empty(t, runner.ran)
}

func TestCleanupRunsAllDeletions(t *testing.T) {
	runner := &fakeRunner{hasKubectl: true}

	require.NoError(t, cleanup(context.Background(), runner, ""))
	require.Len(t, runner.ran, 3)

	assert.Equal(t, []string{"kubectl", "delete", "namespace", "velero", "--ignore-not-found"}, runner.ran[0])
	assert.Equal(t, "crds", runner.ran[1][2])
	assert.Equal(t, "clusterrolebinding", runner.ran[2][2])
}

func TestCleanupPassesContext(t *testing.T) {
	runner := &fakeRunner{hasKubectl: true}

	require.NoError(t, cleanup(context.Background(), runner, "primary"))
	for _, call := range runner.ran {
		assert.Equal(t, []string{"kubectl", "--context", "primary"}, call[:3])
	}
}

func TestCleanupContinuesAfterFailure(t *testing.T) {
	runner := &fakeRunner{hasKubectl: true, failIndex: 1}

	err := cleanup(context.Background(), runner, "")
	require.Error(t, err)

	// remaining deletions still ran
	assert.Len(t, runner.ran, 3)
}
