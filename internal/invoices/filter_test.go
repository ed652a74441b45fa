package invoices

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func f64(v float64) *float64 { return &v }

func sampleInvoices(coID *uuid.UUID) []Invoice {
	return []Invoice{
		{InvoiceNumber: "INV-1001", Amount: 25000, DateBilled: "2025-01-15"},
		{InvoiceNumber: "INV-1002", Amount: 40000, DateBilled: "2025-02-15", ChangeOrderID: coID},
		{InvoiceNumber: "PRG-0007", Amount: 9000, DateBilled: "2025-03-01"},
	}
}

func TestApplyFiltersConjunction(t *testing.T) {
	invs := sampleInvoices(nil)

	got := ApplyFilters(invs, FilterSpec{InvoiceNumber: "inv", MinAmount: f64(30000)})
	if len(got) != 1 || got[0].InvoiceNumber != "INV-1002" {
		t.Fatalf("conjunction result = %+v", got)
	}
}

func TestApplyFiltersEmptySpecIsIdentity(t *testing.T) {
	invs := sampleInvoices(nil)
	if got := ApplyFilters(invs, FilterSpec{}); !reflect.DeepEqual(got, invs) {
		t.Fatalf("empty spec changed the set: %+v", got)
	}
}

func TestApplyFiltersDateRange(t *testing.T) {
	invs := sampleInvoices(nil)
	got := ApplyFilters(invs, FilterSpec{StartDate: "2025-02-01", EndDate: "2025-02-28"})
	if len(got) != 1 || got[0].DateBilled != "2025-02-15" {
		t.Fatalf("date range result = %+v", got)
	}
}

func TestPartitionByChangeOrder(t *testing.T) {
	coID := uuid.New()
	invs := sampleInvoices(&coID)

	if got := PartitionByChangeOrder(invs, ChangeOrderAll); len(got) != 3 {
		t.Fatalf("'all' partition = %d invoices", len(got))
	}
	if got := PartitionByChangeOrder(invs, ChangeOrderBase); len(got) != 2 {
		t.Fatalf("'base' partition = %d invoices", len(got))
	}
	got := PartitionByChangeOrder(invs, coID.String())
	if len(got) != 1 || got[0].InvoiceNumber != "INV-1002" {
		t.Fatalf("id partition = %+v", got)
	}
	if got := PartitionByChangeOrder(invs, "not-a-uuid"); len(got) != 0 {
		t.Fatalf("bad selector matched invoices: %+v", got)
	}
}

func TestBelongsToRequiresExactProject(t *testing.T) {
	projectID := uuid.New()
	detached := Invoice{}
	owned := Invoice{ProjectID: &projectID}
	other := uuid.New()
	foreign := Invoice{ProjectID: &other}

	if !owned.BelongsTo(projectID) {
		t.Fatal("owned invoice must count")
	}
	if detached.BelongsTo(projectID) || foreign.BelongsTo(projectID) {
		t.Fatal("detached and foreign invoices must not count")
	}
}

func TestTotalBilled(t *testing.T) {
	if got := TotalBilled(sampleInvoices(nil)); got != 74000 {
		t.Fatalf("total billed = %v, want 74000", got)
	}
}
