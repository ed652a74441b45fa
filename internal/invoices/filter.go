package invoices

import (
	"strings"

	"github.com/google/uuid"
)

// Change-order selector values, matching the cost entry views.
const (
	ChangeOrderAll  = "all"
	ChangeOrderBase = "base"
)

// FilterSpec is the transient invoice filter state. Zero values are inactive
// predicates and never exclude a record.
type FilterSpec struct {
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	InvoiceNumber string   `json:"invoice_number,omitempty"`
	MinAmount     *float64 `json:"min_amount,omitempty"`
	MaxAmount     *float64 `json:"max_amount,omitempty"`
}

// ApplyFilters returns the order-preserving subset of invoices satisfying
// every active predicate. Dates compare lexicographically, which matches
// chronological order for ISO YYYY-MM-DD strings.
func ApplyFilters(invoices []Invoice, f FilterSpec) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if matches(inv, f) {
			out = append(out, inv)
		}
	}
	return out
}

func matches(inv Invoice, f FilterSpec) bool {
	if f.StartDate != "" && inv.DateBilled < f.StartDate {
		return false
	}
	if f.EndDate != "" && inv.DateBilled > f.EndDate {
		return false
	}
	if f.InvoiceNumber != "" &&
		!strings.Contains(strings.ToLower(inv.InvoiceNumber), strings.ToLower(f.InvoiceNumber)) {
		return false
	}
	if f.MinAmount != nil && inv.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && inv.Amount > *f.MaxAmount {
		return false
	}
	return true
}

// PartitionByChangeOrder restricts invoices to the selected change-order
// bucket, applied before FilterSpec predicates. Unparseable IDs select
// nothing.
func PartitionByChangeOrder(invoices []Invoice, selector string) []Invoice {
	if selector == "" || selector == ChangeOrderAll {
		return invoices
	}
	out := make([]Invoice, 0, len(invoices))
	if selector == ChangeOrderBase {
		for _, inv := range invoices {
			if inv.ChangeOrderID == nil {
				out = append(out, inv)
			}
		}
		return out
	}
	id, err := uuid.Parse(selector)
	if err != nil {
		return out
	}
	for _, inv := range invoices {
		if inv.ChangeOrderID != nil && *inv.ChangeOrderID == id {
			out = append(out, inv)
		}
	}
	return out
}
