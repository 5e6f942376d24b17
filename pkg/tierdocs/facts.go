package tierdocs

import "context"

// KeyValue is a single fact about a target, e.g. target_os = "linux".
// Value is empty for bare flags such as "unix".
type KeyValue struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// TargetSpec is the structured metadata the compiler reports for a target.
// All fields are optional.
type TargetSpec struct {
	Description string `yaml:"description,omitempty"`
	TierHint    *Tier  `yaml:"tier,omitempty"`
	HostTools   *bool  `yaml:"host_tools,omitempty"`
	Std         *bool  `yaml:"std,omitempty"`
}

// Facts is everything the fact provider knows about one target.
type Facts struct {
	Cfg  []KeyValue
	Spec *TargetSpec
}

// FactProvider enumerates targets and reports per-target facts. It is ground
// truth and is never written to.
// Implementations must be safe for concurrent use by multiple goroutines.
type FactProvider interface {
	// Targets returns every known target name.
	Targets(ctx context.Context) ([]string, error)

	// Facts returns the facts of a single target.
	Facts(ctx context.Context, target string) (Facts, error)
}
