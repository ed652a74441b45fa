package costs

import (
	"testing"

	"github.com/google/uuid"
)

func TestLaborCost(t *testing.T) {
	e := Entry{
		StHours: 40, StRate: 50,
		OtHours: 5, OtRate: 75,
		PerDiem: 100,
		MobQty:  2, MobRate: 150,
	}
	if got := e.LaborCost(); got != 2775 {
		t.Fatalf("labor cost = %v, want 2775", got)
	}
}

func TestLaborCostMissingFactorsAreZero(t *testing.T) {
	if got := (Entry{}).LaborCost(); got != 0 {
		t.Fatalf("empty labor entry cost = %v, want 0", got)
	}
	e := Entry{StHours: 8} // hours without a rate
	if got := e.LaborCost(); got != 0 {
		t.Fatalf("rate-less labor entry cost = %v, want 0", got)
	}
}

func TestAmountPerCategory(t *testing.T) {
	e := Entry{Cost: 500, StHours: 10, StRate: 20}
	if got := e.Amount(CategoryMaterial); got != 500 {
		t.Fatalf("material amount = %v, want 500", got)
	}
	if got := e.Amount(CategoryLabor); got != 200 {
		t.Fatalf("labor amount = %v, want 200", got)
	}
}

func TestVisibleUnderGlobalEntries(t *testing.T) {
	projectID := uuid.New()
	otherID := uuid.New()

	owned := Entry{ProjectID: &projectID}
	foreign := Entry{ProjectID: &otherID}
	global := Entry{ProjectID: nil}

	if !owned.VisibleUnder(projectID) {
		t.Fatal("owned entry must be visible under its project")
	}
	if foreign.VisibleUnder(projectID) {
		t.Fatal("foreign entry must not be visible")
	}
	if !global.VisibleUnder(projectID) || !global.VisibleUnder(otherID) {
		t.Fatal("entry without a project must be visible under every project")
	}
}

func TestBudgetColumnMapping(t *testing.T) {
	cases := map[Category]string{
		CategoryMaterial:      "material_budget",
		CategoryLabor:         "labor_budget",
		CategoryEquipment:     "equipment_budget",
		CategorySubcontractor: "subcontractor_budget",
		CategoryOthers:        "others_budget",
		CategoryCapLeases:     "cap_leases_budget",
		CategoryConsumable:    "consumable_budget",
	}
	for c, want := range cases {
		if got := Describe(c).BudgetColumn; got != want {
			t.Errorf("%s budget column = %q, want %q", c, got, want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if _, err := ParseCategory("capLeases"); err != nil {
		t.Fatalf("capLeases should parse: %v", err)
	}
	if _, err := ParseCategory("warehouse"); err == nil {
		t.Fatal("unknown category must not parse")
	}
}

func TestCSVColumnCounts(t *testing.T) {
	if n := len(Describe(CategoryLabor).CSVColumns); n != 12 {
		t.Fatalf("labor CSV columns = %d, want 12", n)
	}
	if n := len(Describe(CategoryOthers).CSVColumns); n != 6 {
		t.Fatalf("others CSV columns = %d, want 6", n)
	}
	for _, c := range []Category{CategoryMaterial, CategoryEquipment, CategorySubcontractor, CategoryCapLeases, CategoryConsumable} {
		if n := len(Describe(c).CSVColumns); n != 5 {
			t.Fatalf("%s CSV columns = %d, want 5", c, n)
		}
	}
}
