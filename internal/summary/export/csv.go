package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/protrack-app/protrack/internal/costs"
)

// WriteSummaryCSV renders the project rollup as CSV: one row per category
// with cost, budget and variance, then totals and profitability rows.
func WriteSummaryCSV(w io.Writer, d SummaryData) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Job Number", d.Project.JobNumber},
		{"Job Name", d.Project.JobName},
		{"Customer", d.Project.Customer},
		{"Field/Shop/Both", string(d.Project.FieldShopBoth)},
		{"Total Billed", amount(d.TotalBilled)},
		{"Report Date", reportDate(d.GeneratedAt)},
		{},
		{"Category", "Cost", "Budget", "Variance"},
	}
	for _, line := range d.Lines {
		records = append(records, []string{
			line.Label, amount(line.Total), amount(line.Budget), amount(line.Variance),
		})
	}
	records = append(records,
		[]string{"Total", amount(d.TotalCosts), amount(d.TotalBudget), amount(d.TotalVariance)},
		[]string{},
		[]string{"Billed to Date", amount(d.TotalBilled)},
		[]string{"Gross Profit", amount(d.GrossProfit)},
		[]string{"Profit Margin", Margin(d.ProfitMargin)},
	)

	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCategoryCSV renders a filtered category ledger: when filters are
// active, a preamble naming them and the record count, then the column
// header, one row per entry and a trailing category total. The trailing
// total always equals the sum a summary over the same entries would report.
func WriteCategoryCSV(w io.Writer, c costs.Category, entries []costs.Entry, f costs.FilterSpec) error {
	d := costs.Describe(c)
	cw := csv.NewWriter(w)

	if f.Active() {
		for _, rec := range filterPreamble(f) {
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"Records", strconv.Itoa(len(entries))}); err != nil {
			return err
		}
		if err := cw.Write([]string{}); err != nil {
			return err
		}
	}
	if err := cw.Write(d.CSVColumns); err != nil {
		return err
	}

	for _, e := range entries {
		if err := cw.Write(entryRow(c, e)); err != nil {
			return err
		}
	}

	if err := cw.Write(totalRow(c, costs.Total(entries, c))); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func filterPreamble(f costs.FilterSpec) [][]string {
	recs := [][]string{{"Filters"}}
	add := func(label, value string) {
		if value != "" {
			recs = append(recs, []string{label, value})
		}
	}
	add("Start Date", f.StartDate)
	add("End Date", f.EndDate)
	add("Vendor", f.Vendor)
	if f.MinCost != nil {
		add("Min Cost", amount(*f.MinCost))
	}
	if f.MaxCost != nil {
		add("Max Cost", amount(*f.MaxCost))
	}
	if f.InSystem != "" && f.InSystem != costs.InSystemAll {
		add("In System", f.InSystem)
	}
	add("Employee", f.EmployeeName)
	if f.MinHours != nil {
		add("Min Hours", amount(*f.MinHours))
	}
	if f.MaxHours != nil {
		add("Max Hours", amount(*f.MaxHours))
	}
	add("Subcontractor", f.SubcontractorName)
	return recs
}

func entryRow(c costs.Category, e costs.Entry) []string {
	switch c {
	case costs.CategoryLabor:
		return []string{
			e.Date, e.EmployeeName,
			amount(e.StHours), amount(e.StRate),
			amount(e.OtHours), amount(e.OtRate),
			amount(e.DtHours), amount(e.DtRate),
			amount(e.PerDiem),
			amount(e.MobQty), amount(e.MobRate),
			amount(e.LaborCost()),
		}
	case costs.CategoryOthers:
		return []string{e.Date, e.Vendor, e.Description, e.InvoiceNumber, amount(e.Cost), inSystem(e)}
	case costs.CategorySubcontractor:
		name := e.SubcontractorName
		if name == "" {
			name = e.Vendor
		}
		return []string{e.Date, name, e.InvoiceNumber, amount(e.Cost), inSystem(e)}
	default:
		return []string{e.Date, e.Vendor, e.InvoiceNumber, amount(e.Cost), inSystem(e)}
	}
}

// totalRow places the category total in the same column as the per-row
// amounts so spreadsheet sums line up.
func totalRow(c costs.Category, total float64) []string {
	cols := len(costs.Describe(c).CSVColumns)
	row := make([]string, cols)
	row[0] = "Category Total"
	switch c {
	case costs.CategoryLabor:
		row[cols-1] = amount(total)
	default:
		// Cost sits second from last, before In System.
		row[cols-2] = amount(total)
	}
	return row
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func inSystem(e costs.Entry) string {
	if e.InSystem {
		return "yes"
	}
	return "no"
}
