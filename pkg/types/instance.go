package types

import "time"

// Instance represents an EC2 instance belonging to a dev rig
type Instance struct {
	ID         string
	Name       string
	Rig        string
	PrivateIP  string
	PublicIP   string
	State      string
	Type       string
	AZ         string
	KeyName    string
	LaunchTime time.Time
}
