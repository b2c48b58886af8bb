package rules

import (
	"fmt"
	"strings"
)

// Fix replaces Old with New in the generated code of one property.
type Fix struct {
	Class    string `yaml:"class"`
	Property string `yaml:"property"`
	Old      string `yaml:"old"`
	New      string `yaml:"new"`
	Reason   string `yaml:"reason"`
}

type fixKey struct {
	class    string
	property string
}

// Fixes is an immutable lookup of fixes keyed by (class, property).
type Fixes struct {
	byKey map[fixKey]Fix
}

// NewFixes builds a lookup, rejecting incomplete or repeated entries.
func NewFixes(fixes ...Fix) (Fixes, error) {
	m := make(map[fixKey]Fix, len(fixes))
	for i, f := range fixes {
		if f.Class == "" || f.Property == "" || f.Old == "" {
			return Fixes{}, fmt.Errorf("rules: fixes[%d]: class, property and old are required", i)
		}
		k := fixKey{class: f.Class, property: f.Property}
		if _, dup := m[k]; dup {
			return Fixes{}, fmt.Errorf("rules: fixes[%d]: duplicate fix for %s.%s", i, f.Class, f.Property)
		}
		m[k] = f
	}
	return Fixes{byKey: m}, nil
}

// Len returns the number of fixes.
func (f Fixes) Len() int { return len(f.byKey) }

// Lookup returns the fix for exactly this class and property.
func (f Fixes) Lookup(class, property string) (Fix, bool) {
	fix, ok := f.byKey[fixKey{class: class, property: property}]
	return fix, ok
}

// Apply replaces every occurrence of the fix's old text in code. Code is
// returned unchanged when no fix is registered for the pair.
func (f Fixes) Apply(class, property, code string) string {
	fix, ok := f.Lookup(class, property)
	if !ok {
		return code
	}
	return strings.ReplaceAll(code, fix.Old, fix.New)
}
