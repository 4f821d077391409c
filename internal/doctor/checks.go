// Package doctor diagnoses an lscpkg installation: config, external tools,
// and the scratch root every workspace is created under.
package doctor

import (
	"fmt"
	"strings"
)

// CheckStatus is the outcome of a single check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Check categories, in display order.
const (
	CategoryConfig  = "CONFIG"
	CategoryTools   = "TOOLS"
	CategoryScratch = "SCRATCH"
)

// Categories lists every category in display order.
var Categories = []string{CategoryConfig, CategoryTools, CategoryScratch}

// CheckResult is what one check found.
type CheckResult struct {
	Name       string
	Category   string // filled in by Run
	Status     CheckStatus
	Message    string
	Suggestion string
}

// Check is a single diagnostic.
type Check interface {
	Name() string
	Category() string
	Run() CheckResult
}

// Report collects the results of a doctor run in check order.
type Report struct {
	Results []CheckResult
}

// Run executes checks one after another. The scratch check creates a real
// workspace, so nothing here runs concurrently.
func Run(checks []Check) Report {
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		r := c.Run()
		if r.Name == "" {
			r.Name = c.Name()
		}
		r.Category = c.Category()
		results = append(results, r)
	}
	return Report{Results: results}
}

// Section is the results of one category.
type Section struct {
	Category string
	Results  []CheckResult
}

// Sections groups results by category in display order, skipping empty
// categories. Categories not in Categories come last in first-seen order.
func (r Report) Sections() []Section {
	byCategory := make(map[string][]CheckResult)
	var order []string
	for _, res := range r.Results {
		if _, seen := byCategory[res.Category]; !seen {
			order = append(order, res.Category)
		}
		byCategory[res.Category] = append(byCategory[res.Category], res)
	}

	var sections []Section
	for _, cat := range Categories {
		if results, ok := byCategory[cat]; ok {
			sections = append(sections, Section{Category: cat, Results: results})
			delete(byCategory, cat)
		}
	}
	for _, cat := range order {
		if results, ok := byCategory[cat]; ok {
			sections = append(sections, Section{Category: cat, Results: results})
		}
	}
	return sections
}

// Count returns how many results have the given status.
func (r Report) Count(status CheckStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any check failed. Warnings don't count.
func (r Report) Failed() bool {
	return r.Count(StatusFail) > 0
}

// Summary is the closing line of a doctor run, e.g. "1 failed, 2 warnings".
func (r Report) Summary() string {
	fail, warn := r.Count(StatusFail), r.Count(StatusWarn)
	if fail == 0 && warn == 0 {
		return "Everything looks good"
	}

	var parts []string
	if fail > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", fail))
	}
	if warn > 0 {
		parts = append(parts, fmt.Sprintf("%d warning%s", warn, pluralize(warn)))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
