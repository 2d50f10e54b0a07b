// Package velero removes the Velero install left behind by the
// cluster-migration demo. kubectl is the interface here: devrig only
// orchestrates it.
package velero

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Runner abstracts kubectl execution for tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	LookPath(file string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// deletions, in order. Namespace first so workloads drain before the
// CRDs go.
var deletions = [][]string{
	{"delete", "namespace", "velero", "--ignore-not-found"},
	{"delete", "crds", "-l", "component=velero", "--ignore-not-found"},
	{"delete", "clusterrolebinding", "velero", "--ignore-not-found"},
}

// KubectlAvailable reports whether kubectl is on PATH. Callers that can
// live without the velero cleanup check this first and skip instead of
// failing.
func KubectlAvailable() bool {
	return kubectlAvailable(execRunner{})
}

func kubectlAvailable(runner Runner) bool {
	_, err := runner.LookPath("kubectl")
	return err == nil
}

// Cleanup removes the velero namespace, CRDs and cluster role binding
// from the cluster kubectl currently points at. Individual failures are
// collected, not fatal.
func Cleanup(ctx context.Context, kubeContext string) error {
	return cleanup(ctx, execRunner{}, kubeContext)
}

func cleanup(ctx context.Context, runner Runner, kubeContext string) error {
	if _, err := runner.LookPath("kubectl"); err != nil {
		return fmt.Errorf("kubectl not found on PATH: %w", err)
	}

	var errs []error

	for _, args := range deletions {
		if kubeContext != "" {
			args = append([]string{"--context", kubeContext}, args...)
		}

		if err := runner.Run(ctx, "kubectl", args...); err != nil {
			errs = append(errs, fmt.Errorf("kubectl %v: %w", args, err))
		}
	}

	return errors.Join(errs...)
}
