package types

// Requirement is a scheduling requirement attached to an offering, in the
// karpenter NodePool requirement format.
type Requirement struct {
	Key      string   `json:"key"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

// Offering is a purchasable capacity option for an instance type in a
// single availability zone.
type Offering struct {
	Price        float64       `json:"Price"`
	Available    bool          `json:"Available"`
	Requirements []Requirement `json:"Requirements"`
}

// Resources holds the allocatable resources of an instance type, as
// kubernetes quantity strings.
type Resources struct {
	CPU              string `json:"cpu"`
	Memory           string `json:"memory"`
	EphemeralStorage string `json:"ephemeral-storage"`
	Pods             string `json:"pods"`
}

// InstanceTypeEntry is one entry of the generated instance type catalog.
type InstanceTypeEntry struct {
	Name             string     `json:"name"`
	Offerings        []Offering `json:"offerings"`
	Architecture     string     `json:"architecture"`
	OperatingSystems []string   `json:"operatingSystems"`
	Resources        Resources  `json:"resources"`
}
