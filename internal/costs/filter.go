package costs

import "strings"

// In-system tri-state filter values. Empty behaves like InSystemAll.
const (
	InSystemAll   = "all"
	InSystemTrue  = "true"
	InSystemFalse = "false"
)

// FilterSpec is the transient per-category filter state. Zero values are
// inactive predicates and never exclude a record.
type FilterSpec struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	Vendor   string   `json:"vendor,omitempty"`
	MinCost  *float64 `json:"min_cost,omitempty"`
	MaxCost  *float64 `json:"max_cost,omitempty"`
	InSystem string   `json:"in_system,omitempty"`

	EmployeeName string   `json:"employee_name,omitempty"`
	MinHours     *float64 `json:"min_hours,omitempty"`
	MaxHours     *float64 `json:"max_hours,omitempty"`

	SubcontractorName string `json:"subcontractor_name,omitempty"`
}

// Active reports whether any predicate is set.
func (f FilterSpec) Active() bool {
	return f.StartDate != "" || f.EndDate != "" ||
		f.Vendor != "" || f.MinCost != nil || f.MaxCost != nil ||
		(f.InSystem != "" && f.InSystem != InSystemAll) ||
		f.EmployeeName != "" || f.MinHours != nil || f.MaxHours != nil ||
		f.SubcontractorName != ""
}

// ApplyFilters returns the order-preserving subset of entries satisfying
// every active predicate for the category. The input is never mutated.
// Dates compare lexicographically, which matches chronological order for
// ISO YYYY-MM-DD strings.
func ApplyFilters(entries []Entry, category Category, f FilterSpec) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, category, f) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Entry, category Category, f FilterSpec) bool {
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}

	switch category {
	case CategoryLabor:
		if !containsFold(e.EmployeeName, f.EmployeeName) {
			return false
		}
		hours := e.WorkedHours()
		if f.MinHours != nil && hours < *f.MinHours {
			return false
		}
		if f.MaxHours != nil && hours > *f.MaxHours {
			return false
		}
	case CategorySubcontractor:
		if !containsFold(e.SubcontractorName, f.SubcontractorName) {
			return false
		}
		if !matchesStandard(e, f) {
			return false
		}
	default:
		if !matchesStandard(e, f) {
			return false
		}
	}
	return true
}

func matchesStandard(e Entry, f FilterSpec) bool {
	if !containsFold(e.Vendor, f.Vendor) {
		return false
	}
	if f.MinCost != nil && e.Cost < *f.MinCost {
		return false
	}
	if f.MaxCost != nil && e.Cost > *f.MaxCost {
		return false
	}
	if f.InSystem != "" && f.InSystem != InSystemAll {
		if e.InSystem != (f.InSystem == InSystemTrue) {
			return false
		}
	}
	return true
}

func containsFold(value, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}
