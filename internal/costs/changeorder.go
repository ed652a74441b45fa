package costs

import "github.com/google/uuid"

// Change-order selector values. Any other selector value is treated as a
// change order ID.
const (
	ChangeOrderAll  = "all"
	ChangeOrderBase = "base"
)

// PartitionByChangeOrder restricts entries to the selected change-order
// bucket. This is a hard partition applied before FilterSpec predicates:
// "all" keeps everything, "base" keeps entries with no change order, and a
// change order ID keeps only its entries. Unparseable IDs select nothing.
func PartitionByChangeOrder(entries []Entry, selector string) []Entry {
	if selector == "" || selector == ChangeOrderAll {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	if selector == ChangeOrderBase {
		for _, e := range entries {
			if e.ChangeOrderID == nil {
				out = append(out, e)
			}
		}
		return out
	}
	id, err := uuid.Parse(selector)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if e.ChangeOrderID != nil && *e.ChangeOrderID == id {
			out = append(out, e)
		}
	}
	return out
}

// VisibleEntries keeps entries belonging to the project plus legacy global
// entries with no project. Order is preserved.
func VisibleEntries(entries []Entry, projectID uuid.UUID) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.VisibleUnder(projectID) {
			out = append(out, e)
		}
	}
	return out
}
