package costs

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func f64(v float64) *float64 { return &v }

func materialEntries() []Entry {
	return []Entry{
		{Date: "2025-01-05", Vendor: "Acme Steel", Cost: 1200, InSystem: true},
		{Date: "2025-02-10", Vendor: "Bolt Supply", Cost: 300, InSystem: false},
		{Date: "2025-03-20", Vendor: "acme fasteners", Cost: 800, InSystem: true},
	}
}

func TestApplyFiltersConjunction(t *testing.T) {
	entries := materialEntries()

	got := ApplyFilters(entries, CategoryMaterial, FilterSpec{
		Vendor:   "acme",
		MinCost:  f64(1000),
		InSystem: InSystemTrue,
	})
	if len(got) != 1 || got[0].Vendor != "Acme Steel" {
		t.Fatalf("conjunction result = %+v", got)
	}
}

func TestApplyFiltersEmptySpecIsIdentity(t *testing.T) {
	entries := materialEntries()
	got := ApplyFilters(entries, CategoryMaterial, FilterSpec{})
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("empty spec changed the set: %+v", got)
	}
}

func TestApplyFiltersMonotonicity(t *testing.T) {
	entries := materialEntries()
	full := FilterSpec{Vendor: "acme", MinCost: f64(500), InSystem: InSystemTrue}
	relaxed := full
	relaxed.MinCost = nil

	strict := ApplyFilters(entries, CategoryMaterial, full)
	loose := ApplyFilters(entries, CategoryMaterial, relaxed)
	if len(loose) < len(strict) {
		t.Fatalf("removing a predicate shrank the result: %d < %d", len(loose), len(strict))
	}
	// Every strict survivor must also survive the relaxed spec.
	for _, e := range strict {
		found := false
		for _, l := range loose {
			if l.Vendor == e.Vendor && l.Date == e.Date {
				found = true
			}
		}
		if !found {
			t.Fatalf("entry %+v lost when relaxing the spec", e)
		}
	}
}

func TestApplyFiltersDateRangeLexicographic(t *testing.T) {
	entries := materialEntries()
	got := ApplyFilters(entries, CategoryMaterial, FilterSpec{StartDate: "2025-02-01", EndDate: "2025-02-28"})
	if len(got) != 1 || got[0].Date != "2025-02-10" {
		t.Fatalf("date range result = %+v", got)
	}
}

func TestApplyFiltersLaborHours(t *testing.T) {
	entries := []Entry{
		{Date: "2025-01-02", EmployeeName: "Jordan Blake", StHours: 40, OtHours: 5, MobQty: 3},
		{Date: "2025-01-03", EmployeeName: "Sam Reyes", StHours: 8},
	}

	got := ApplyFilters(entries, CategoryLabor, FilterSpec{MinHours: f64(40)})
	if len(got) != 1 || got[0].EmployeeName != "Jordan Blake" {
		t.Fatalf("min hours result = %+v", got)
	}

	// Mob quantity is not hours: 40+5 = 45, a 46-hour floor excludes the entry.
	got = ApplyFilters(entries, CategoryLabor, FilterSpec{MinHours: f64(46)})
	if len(got) != 0 {
		t.Fatalf("mob qty leaked into hours total: %+v", got)
	}

	got = ApplyFilters(entries, CategoryLabor, FilterSpec{EmployeeName: "sam"})
	if len(got) != 1 || got[0].EmployeeName != "Sam Reyes" {
		t.Fatalf("employee substring result = %+v", got)
	}
}

func TestApplyFiltersSubcontractor(t *testing.T) {
	entries := []Entry{
		{Date: "2025-01-02", SubcontractorName: "North Electric", Vendor: "North Electric LLC", Cost: 5000, InSystem: true},
		{Date: "2025-01-03", SubcontractorName: "Delta Paving", Vendor: "Delta Paving Inc", Cost: 7500, InSystem: false},
	}
	got := ApplyFilters(entries, CategorySubcontractor, FilterSpec{SubcontractorName: "delta", InSystem: InSystemFalse})
	if len(got) != 1 || got[0].SubcontractorName != "Delta Paving" {
		t.Fatalf("subcontractor result = %+v", got)
	}
}

func TestApplyFiltersInSystemTriState(t *testing.T) {
	entries := materialEntries()
	if got := ApplyFilters(entries, CategoryMaterial, FilterSpec{InSystem: InSystemAll}); len(got) != 3 {
		t.Fatalf("'all' filtered entries: %d", len(got))
	}
	if got := ApplyFilters(entries, CategoryMaterial, FilterSpec{InSystem: InSystemFalse}); len(got) != 1 {
		t.Fatalf("'false' result = %d entries", len(got))
	}
}

func TestPartitionByChangeOrder(t *testing.T) {
	coID := uuid.New()
	entries := []Entry{
		{Vendor: "base-1"},
		{Vendor: "co-1", ChangeOrderID: &coID},
		{Vendor: "base-2"},
	}

	if got := PartitionByChangeOrder(entries, ChangeOrderAll); len(got) != 3 {
		t.Fatalf("'all' partition = %d entries", len(got))
	}
	base := PartitionByChangeOrder(entries, ChangeOrderBase)
	if len(base) != 2 || base[0].Vendor != "base-1" || base[1].Vendor != "base-2" {
		t.Fatalf("'base' partition = %+v", base)
	}
	co := PartitionByChangeOrder(entries, coID.String())
	if len(co) != 1 || co[0].Vendor != "co-1" {
		t.Fatalf("id partition = %+v", co)
	}
}

func TestPartitionCommutesWithFilters(t *testing.T) {
	coID := uuid.New()
	entries := []Entry{
		{Date: "2025-01-01", Vendor: "Acme", Cost: 100},
		{Date: "2025-01-02", Vendor: "Acme", Cost: 200, ChangeOrderID: &coID},
		{Date: "2025-01-03", Vendor: "Bolt", Cost: 300},
	}
	spec := FilterSpec{Vendor: "acme"}

	partitionFirst := ApplyFilters(PartitionByChangeOrder(entries, ChangeOrderBase), CategoryMaterial, spec)
	filterFirst := PartitionByChangeOrder(ApplyFilters(entries, CategoryMaterial, spec), ChangeOrderBase)
	if !reflect.DeepEqual(partitionFirst, filterFirst) {
		t.Fatalf("stages do not commute: %+v vs %+v", partitionFirst, filterFirst)
	}
}

func TestVisibleEntries(t *testing.T) {
	projectID := uuid.New()
	otherID := uuid.New()
	entries := []Entry{
		{Vendor: "mine", ProjectID: &projectID},
		{Vendor: "theirs", ProjectID: &otherID},
		{Vendor: "global"},
	}
	got := VisibleEntries(entries, projectID)
	if len(got) != 2 || got[0].Vendor != "mine" || got[1].Vendor != "global" {
		t.Fatalf("visible entries = %+v", got)
	}
}
