package rules

import (
	"strings"

	"github.com/seitarof/gen-vtkwrap/internal/model"
)

// Rule decides whether a parsed filter is excluded from generation.
type Rule interface {
	Name() string
	Excludes(f model.FilterData) bool
}

// ClassRule excludes exact class names.
type ClassRule struct {
	Entries []Entry
}

func (r *ClassRule) Name() string { return "excluded-class" }

func (r *ClassRule) Excludes(f model.FilterData) bool {
	for _, e := range r.Entries {
		if f.ClassName == e.Class {
			return true
		}
	}
	return false
}

// PrefixRule excludes class names starting with a reserved prefix.
type PrefixRule struct {
	Entries []Entry
}

func (r *PrefixRule) Name() string { return "excluded-prefix" }

func (r *PrefixRule) Excludes(f model.FilterData) bool {
	for _, e := range r.Entries {
		if strings.HasPrefix(f.ClassName, e.Class) {
			return true
		}
	}
	return false
}

// DenylistRule excludes class names on a named denylist.
type DenylistRule struct {
	List Denylist
}

func (r *DenylistRule) Name() string { return "denylist:" + r.List.Name }

func (r *DenylistRule) Excludes(f model.FilterData) bool {
	return r.List.Contains(f.ClassName)
}

// Step records what one rule removed.
type Step struct {
	Rule    string
	Removed []string
}

// Report lists the steps of one Apply call in order.
type Report struct {
	Before int
	After  int
	Steps  []Step
}

// Removed returns the total number of excluded filters.
func (r Report) Removed() int { return r.Before - r.After }

// Apply runs the rules in order and returns the surviving filters in their
// original order.
func Apply(filters []model.FilterData, rules ...Rule) ([]model.FilterData, Report) {
	report := Report{Before: len(filters)}
	kept := filters
	for _, rule := range rules {
		step := Step{Rule: rule.Name()}
		next := make([]model.FilterData, 0, len(kept))
		for _, f := range kept {
			if rule.Excludes(f) {
				step.Removed = append(step.Removed, f.ClassName)
				continue
			}
			next = append(next, f)
		}
		kept = next
		report.Steps = append(report.Steps, step)
	}
	report.After = len(kept)
	return kept, report
}
