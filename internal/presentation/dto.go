// Package presentation shapes launcher state for the command line.
package presentation

import (
	"slices"
)

// RootsDTO describes the folders a shortcut scan will search.
type RootsDTO struct {
	Roots  []string `json:"roots"`
	Source string   `json:"source"` // "saved" or "default"
}

// FlagDTO is one feature flag and whether it differs from its default.
type FlagDTO struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Default bool   `json:"default"`
}

// FromRoots wraps roots, reporting whether they came from the settings store.
func FromRoots(roots []string, saved bool) RootsDTO {
	source := "default"
	if saved {
		source = "saved"
	}
	if roots == nil {
		roots = []string{}
	}
	return RootsDTO{Roots: roots, Source: source}
}

// FromFlags lists every flag in current or defaults, sorted by name.
func FromFlags(current, defaults map[string]bool) []FlagDTO {
	names := make([]string, 0, len(current)+len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	for name := range current {
		if _, ok := defaults[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	dtos := make([]FlagDTO, len(names))
	for i, name := range names {
		enabled, ok := current[name]
		if !ok {
			enabled = defaults[name]
		}
		dtos[i] = FlagDTO{Name: name, Enabled: enabled, Default: defaults[name]}
	}
	return dtos
}
