package model

import "time"

// CheckReport is the persisted summary of one check run. The violations
// themselves are stored separately as a stream; the summary carries the
// aggregate numbers used by `view` and CI.
type CheckReport struct {
	GeneratedAt time.Time      `yaml:"generated_at"`
	Paths       []string       `yaml:"paths"`
	ModuleCount int            `yaml:"module_count"`
	Violations  int            `yaml:"violations"`
	ByArea      map[string]int `yaml:"by_area,omitempty"`
}
