package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Rig holds the identifiers of the AWS resources created for one dev
// rig. `up` writes it, `down` and `status` consume it.
type Rig struct {
	Name            string    `yaml:"name"`
	Region          string    `yaml:"region,omitempty"`
	RoleName        string    `yaml:"role_name,omitempty"`
	PolicyArns      []string  `yaml:"policy_arns,omitempty"`
	InstanceProfile string    `yaml:"instance_profile,omitempty"`
	KeyName         string    `yaml:"key_name,omitempty"`
	KeyPath         string    `yaml:"key_path,omitempty"`
	KeySecretARN    string    `yaml:"key_secret_arn,omitempty"`
	SecurityGroupID string    `yaml:"security_group_id,omitempty"`
	InstanceID      string    `yaml:"instance_id,omitempty"`
	CreatedAt       time.Time `yaml:"created_at,omitempty"`
}

// State is the content of ~/.devrig/state.yaml
type State struct {
	Rigs map[string]*Rig `yaml:"rigs,omitempty"`
}

// GetStatePath returns the state file path (~/.devrig/state.yaml)
func GetStatePath() string {
	return filepath.Join(GetConfigDir(), "state.yaml")
}

// LoadState loads the rig state. A missing file yields an empty state.
func LoadState() (*State, error) {
	data, err := os.ReadFile(GetStatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Rigs: make(map[string]*Rig)}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if st.Rigs == nil {
		st.Rigs = make(map[string]*Rig)
	}

	return &st, nil
}

// SaveState writes the rig state back to disk.
func SaveState(st *State) error {
	if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(GetStatePath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// PutRig records a rig in the state file.
func PutRig(rig *Rig) error {
	st, err := LoadState()
	if err != nil {
		return err
	}

	st.Rigs[rig.Name] = rig
	return SaveState(st)
}

// GetRig returns a recorded rig, or nil if the state has no record of it.
func GetRig(name string) (*Rig, error) {
	st, err := LoadState()
	if err != nil {
		return nil, err
	}
	return st.Rigs[name], nil
}

// DeleteRig removes a rig record from the state file.
func DeleteRig(name string) error {
	st, err := LoadState()
	if err != nil {
		return err
	}

	delete(st.Rigs, name)
	return SaveState(st)
}
