// Package installer sets up the local developer tooling the autoscaler
// workflow expects: go, kubectl, kind, helm, eksctl and the AWS CLI.
// Tools already on PATH are skipped, so running it twice is a no-op.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Runner abstracts command execution so installs can be tested without
// touching the host.
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

// ToolStatus is the result of checking or installing one tool.
type ToolStatus struct {
	Name      string
	Bin       string
	Present   bool
	Installed bool // true when this run installed it
	Path      string
}

// Installer installs the fixed tool list for one platform.
type Installer struct {
	platform Platform
	runner   Runner
}

// New creates an Installer for the given platform.
func New(platform Platform) *Installer {
	return &Installer{platform: platform, runner: execRunner{}}
}

// NewWithRunner creates an Installer with a custom runner, for tests.
func NewWithRunner(platform Platform, runner Runner) *Installer {
	return &Installer{platform: platform, runner: runner}
}

// Check reports which tools are already present, without installing
// anything.
func (i *Installer) Check() []ToolStatus {
	statuses := make([]ToolStatus, 0, len(tools))

	for _, tool := range tools {
		status := ToolStatus{Name: tool.Name, Bin: tool.Bin}
		if path, err := i.runner.LookPath(tool.Bin); err == nil {
			status.Present = true
			status.Path = path
		}
		statuses = append(statuses, status)
	}

	return statuses
}

// Install installs every missing tool, failing on the first install
// error. Tools already on PATH are reported as present and skipped.
func (i *Installer) Install(ctx context.Context) ([]ToolStatus, error) {
	if i.platform == PlatformUnknown {
		return nil, fmt.Errorf("unsupported platform, install tools manually")
	}

	statuses := make([]ToolStatus, 0, len(tools))

	for _, tool := range tools {
		status := ToolStatus{Name: tool.Name, Bin: tool.Bin}

		if path, err := i.runner.LookPath(tool.Bin); err == nil {
			status.Present = true
			status.Path = path
			statuses = append(statuses, status)
			continue
		}

		cmds := tool.commandsFor(i.platform)
		if cmds == nil {
			return statuses, fmt.Errorf("no install commands for %s on %s", tool.Name, i.platform)
		}

		for _, cmd := range cmds {
			if err := i.runner.Run(ctx, cmd[0], cmd[1:]...); err != nil {
				return statuses, fmt.Errorf("failed to install %s: %w", tool.Name, err)
			}
		}

		status.Present = true
		status.Installed = true
		if path, err := i.runner.LookPath(tool.Bin); err == nil {
			status.Path = path
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
