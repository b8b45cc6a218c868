package model

// Violation records one illegal reference from a caller module into a private
// module of an area the caller does not belong to. Exactly one violation is
// produced per distinct (caller, target) pair, regardless of how many call
// sites inside the caller reference the target.
type Violation struct {
	Location SourceLocation `yaml:"location"`
	Caller   string         `yaml:"caller"`
	Target   string         `yaml:"target"`
	Area     string         `yaml:"area"`
	Message  string         `yaml:"message"`
}

// ContractIssue records a public module that has no matching test module.
type ContractIssue struct {
	Module   string         `yaml:"module"`
	Location SourceLocation `yaml:"location"`
	Missing  string         `yaml:"missing"`
}
