package model

// ModuleSet is the indexed collection of all modules found in one analysis
// run. It preserves insertion order so diagnostics stay deterministic, and
// offers name lookup for ancestor resolution and boundary checking.
type ModuleSet struct {
	ordered []*Module
	byName  map[string]*Module
}

// NewModuleSet creates an empty ModuleSet.
func NewModuleSet() *ModuleSet {
	return &ModuleSet{byName: map[string]*Module{}}
}

// Add inserts a module into the set. If a module with the same qualified name
// is already present, the existing module is returned and the set is left
// unchanged; the caller decides how to surface the duplicate.
func (s *ModuleSet) Add(mod *Module) (*Module, bool) {
	if existing, ok := s.byName[mod.Name]; ok {
		return existing, false
	}

	s.ordered = append(s.ordered, mod)
	s.byName[mod.Name] = mod

	return mod, true
}

// Get looks a module up by qualified name.
func (s *ModuleSet) Get(name string) (*Module, bool) {
	mod, ok := s.byName[name]
	return mod, ok
}

// Modules returns the modules in insertion order. The returned slice is
// shared with the set and must not be mutated.
func (s *ModuleSet) Modules() []*Module {
	return s.ordered
}

// Len returns the number of modules in the set.
func (s *ModuleSet) Len() int {
	return len(s.ordered)
}
