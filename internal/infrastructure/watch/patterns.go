package watch

import (
	"path/filepath"
)

// Filter selects watched files by their base name.
type Filter struct {
	Include []string
	Exclude []string
}

// DocumentFilter matches the YAML documents of a workspace and skips the
// swap and backup files editors leave next to them.
func DocumentFilter() *Filter {
	return &Filter{
		Include: []string{"*.yaml", "*.yml"},
		Exclude: []string{".*", "*~", "*.swp", "*.tmp"},
	}
}

// Matches reports whether the base name of path passes the filter. Excludes
// win over includes and an empty include list admits everything.
func (f *Filter) Matches(path string) bool {
	base := filepath.Base(path)

	for _, pattern := range f.Exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
