package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner pretends tools in present are on PATH and records every
// command it is asked to run. Installed binaries become present.
type fakeRunner struct {
	present map[string]bool
	ran     [][]string
	failOn  string
}

func newFakeRunner(present ...string) *fakeRunner {
	r := &fakeRunner{present: make(map[string]bool)}
	for _, p := range present {
		r.present[p] = true
	}
	return r
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	if name == r.failOn {
		return errors.New("exit status 1")
	}
	r.ran = append(r.ran, append([]string{name}, args...))
	return nil
}

func (r *fakeRunner) LookPath(file string) (string, error) {
	if r.present[file] {
		return "/usr/local/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func TestInstallSkipsPresentTools(t *testing.T) {
	runner := newFakeRunner("go", "kubectl", "kind", "helm", "eksctl", "aws")
	inst := NewWithRunner(PlatformDebian, runner)

	statuses, err := inst.Install(context.Background())
	require.NoError(t, err)

	assert.Empty(t, runner.ran, "nothing should be executed when everything is present")
	for _, s := range statuses {
		assert.True(t, s.Present)
		assert.False(t, s.Installed)
	}
}

func TestInstallTwiceIsIdempotent(t *testing.T) {
	runner := newFakeRunner()
	inst := NewWithRunner(PlatformDarwin, runner)

	statuses, err := inst.Install(context.Background())
	require.NoError(t, err)

	installed := 0
	for _, s := range statuses {
		if s.Installed {
			installed++
			// brew installs leave the binary on PATH
			runner.present[s.Bin] = true
		}
	}
	assert.Equal(t, len(statuses), installed)

	firstRun := len(runner.ran)
	assert.Greater(t, firstRun, 0)

	// second run: everything present, no commands
	statuses, err = inst.Install(context.Background())
	require.NoError(t, err)
	assert.Len(t, runner.ran, firstRun)
	for _, s := range statuses {
		assert.False(t, s.Installed)
	}
}

func TestInstallFailsFast(t *testing.T) {
	runner := newFakeRunner()
	runner.failOn = "brew"
	inst := NewWithRunner(PlatformDarwin, runner)

	_, err := inst.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install")
}

func TestInstallUnknownPlatform(t *testing.T) {
	inst := NewWithRunner(PlatformUnknown, newFakeRunner())

	_, err := inst.Install(context.Background())
	assert.Error(t, err)
}

func TestCheckReportsMissing(t *testing.T) {
	runner := newFakeRunner("go", "kubectl")
	inst := NewWithRunner(PlatformDebian, runner)

	statuses := inst.Check()
	require.Len(t, statuses, 6)

	byBin := make(map[string]ToolStatus)
	for _, s := range statuses {
		byBin[s.Bin] = s
	}

	assert.True(t, byBin["go"].Present)
	assert.True(t, byBin["kubectl"].Present)
	assert.False(t, byBin["kind"].Present)
	assert.False(t, byBin["aws"].Present)
	assert.Empty(t, runner.ran, "check must not install anything")
}
