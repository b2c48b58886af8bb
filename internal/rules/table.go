package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultTable []byte

// Entry is one excluded class name (or prefix) with the reason it was excluded.
type Entry struct {
	Class  string `yaml:"class"`
	Reason string `yaml:"reason"`
}

// Denylist is a named list of excluded classes. ClassPrefix is prepended to
// every entry when matching class names, so entries can double as file stems.
type Denylist struct {
	Name        string  `yaml:"name"`
	ClassPrefix string  `yaml:"class_prefix"`
	Entries     []Entry `yaml:"entries"`
}

// Contains reports whether className is on the list.
func (d Denylist) Contains(className string) bool {
	for _, e := range d.Entries {
		if d.ClassPrefix+e.Class == className {
			return true
		}
	}
	return false
}

// ContainsStem reports whether a file stem is on the list.
func (d Denylist) ContainsStem(stem string) bool {
	for _, e := range d.Entries {
		if e.Class == stem {
			return true
		}
	}
	return false
}

type tableFile struct {
	Version          int        `yaml:"version"`
	ExcludedClasses  []Entry    `yaml:"excluded_classes"`
	ExcludedPrefixes []Entry    `yaml:"excluded_prefixes"`
	Denylists        []Denylist `yaml:"denylists"`
	Fixes            []Fix      `yaml:"fixes"`
}

// Table is the immutable exclusion and fix-up configuration of one run.
type Table struct {
	version   int
	classes   []Entry
	prefixes  []Entry
	denylists []Denylist
	fixes     Fixes
}

// Default returns the embedded table.
func Default() (Table, error) {
	return Parse(defaultTable)
}

// LoadFile reads a table from a YAML file.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	t, err := Parse(data)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML table.
func Parse(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("decode rules: %w", err)
	}
	if f.Version <= 0 {
		return Table{}, errors.New("rules: version is required")
	}
	if err := validateEntries("excluded_classes", f.ExcludedClasses); err != nil {
		return Table{}, err
	}
	if err := validateEntries("excluded_prefixes", f.ExcludedPrefixes); err != nil {
		return Table{}, err
	}
	for _, d := range f.Denylists {
		if strings.TrimSpace(d.Name) == "" {
			return Table{}, errors.New("rules: denylist without name")
		}
		if err := validateEntries("denylist "+d.Name, d.Entries); err != nil {
			return Table{}, err
		}
	}
	fixes, err := NewFixes(f.Fixes...)
	if err != nil {
		return Table{}, err
	}

	return Table{
		version:   f.Version,
		classes:   f.ExcludedClasses,
		prefixes:  f.ExcludedPrefixes,
		denylists: f.Denylists,
		fixes:     fixes,
	}, nil
}

func validateEntries(section string, entries []Entry) error {
	for i, e := range entries {
		if strings.TrimSpace(e.Class) == "" {
			return fmt.Errorf("rules: %s[%d]: class is required", section, i)
		}
	}
	return nil
}

// Version returns the table version.
func (t Table) Version() int { return t.version }

// Fixes returns the fix-up table.
func (t Table) Fixes() Fixes { return t.fixes }

// Denylist returns the named denylist.
func (t Table) Denylist(name string) (Denylist, bool) {
	for _, d := range t.denylists {
		if d.Name == name {
			return d, true
		}
	}
	return Denylist{}, false
}

// Rules returns the exclusion rules in the order they are applied: exact
// classes, then prefixes, then each denylist.
func (t Table) Rules() []Rule {
	out := []Rule{
		&ClassRule{Entries: append([]Entry(nil), t.classes...)},
		&PrefixRule{Entries: append([]Entry(nil), t.prefixes...)},
	}
	for _, d := range t.denylists {
		out = append(out, &DenylistRule{List: d})
	}
	return out
}
