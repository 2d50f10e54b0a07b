package types

import "time"

// AutoScalingGroup represents an Auto Scaling Group managed by the
// cluster autoscaler under development
type AutoScalingGroup struct {
	Name            string
	ARN             string
	DesiredCapacity int
	MinSize         int
	MaxSize         int
	InstanceCount   int
	CreatedTime     time.Time
	AZs             []string
	Tags            map[string]string
}
