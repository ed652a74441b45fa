package export_test

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/projects"
	"github.com/protrack-app/protrack/internal/summary"
	"github.com/protrack-app/protrack/internal/summary/export"
)

func TestCategoryCSVTrailingTotalMatchesSummary(t *testing.T) {
	projectID := uuid.New()
	entries := []costs.Entry{
		{ProjectID: &projectID, Date: "2025-01-10", Vendor: "Acme", Cost: 1200.50},
		{ProjectID: &projectID, Date: "2025-02-11", Vendor: "Bolt", Cost: 799.50},
	}

	var buf bytes.Buffer
	err := export.WriteCategoryCSV(&buf, costs.CategoryMaterial, entries, costs.FilterSpec{})
	if err != nil {
		t.Fatalf("write category csv: %v", err)
	}

	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	last := records[len(records)-1]
	if last[0] != "Category Total" {
		t.Fatalf("last row = %v, want trailing category total", last)
	}
	got, err := strconv.ParseFloat(last[len(last)-2], 64)
	if err != nil {
		t.Fatalf("parse trailing total: %v", err)
	}

	rollup := summary.Calculate(&projects.Project{ID: projectID},
		map[costs.Category][]costs.Entry{costs.CategoryMaterial: entries},
		budgets.Budget{}, nil)
	if want := rollup.Categories[costs.CategoryMaterial]; got != want {
		t.Fatalf("csv total %v disagrees with summary total %v", got, want)
	}
}

func TestCategoryCSVLaborLayout(t *testing.T) {
	entries := []costs.Entry{
		{Date: "2025-01-10", EmployeeName: "Jordan Blake", StHours: 40, StRate: 50, OtHours: 5, OtRate: 75, PerDiem: 100, MobQty: 2, MobRate: 150},
	}

	var buf bytes.Buffer
	if err := export.WriteCategoryCSV(&buf, costs.CategoryLabor, entries, costs.FilterSpec{}); err != nil {
		t.Fatalf("write labor csv: %v", err)
	}
	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	var dataRow []string
	for i, rec := range records {
		if len(rec) > 0 && rec[0] == "Date" {
			if len(rec) != 12 {
				t.Fatalf("labor header has %d columns, want 12", len(rec))
			}
			dataRow = records[i+1]
			break
		}
	}
	if dataRow == nil {
		t.Fatal("labor header row not found")
	}
	if dataRow[len(dataRow)-1] != "2775.00" {
		t.Fatalf("labor row total = %q, want 2775.00", dataRow[len(dataRow)-1])
	}
}

func TestCategoryCSVFilterPreamble(t *testing.T) {
	min := 100.0
	var buf bytes.Buffer
	err := export.WriteCategoryCSV(&buf, costs.CategoryMaterial, nil, costs.FilterSpec{
		Vendor:  "acme",
		MinCost: &min,
	})
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Vendor,acme") || !strings.Contains(out, "Min Cost,100.00") {
		t.Fatalf("filter preamble missing:\n%s", out)
	}
	if !strings.Contains(out, "Records,0") {
		t.Fatalf("record count missing:\n%s", out)
	}
}

func TestCategoryCSVNoPreambleWithoutFilters(t *testing.T) {
	var buf bytes.Buffer
	entries := []costs.Entry{{Date: "2025-01-10", Vendor: "Acme", Cost: 50}}
	if err := export.WriteCategoryCSV(&buf, costs.CategoryMaterial, entries, costs.FilterSpec{}); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Filters") || strings.Contains(out, "Records") {
		t.Fatalf("unfiltered export must start at the column header:\n%s", out)
	}
	if !strings.HasPrefix(out, "Date,") {
		t.Fatalf("first row should be the column header:\n%s", out)
	}
}

func TestPerformanceReportHeaderBlock(t *testing.T) {
	d := export.SummaryData{
		Project: projects.Project{
			JobNumber:     "24-310",
			JobName:       "Pipe Rack",
			Customer:      "Delta Energy",
			FieldShopBoth: "Both",
			Status:        projects.StatusActive,
		},
		TotalBilled: 12500,
		GeneratedAt: time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := export.WritePerformanceReport(&buf, d); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Customer:        Delta Energy",
		"Field/Shop/Both: Both",
		"Total Billed:    $12,500.00",
		"Report Date:     2026-02-14",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report header missing %q:\n%s", want, out)
		}
	}
}

func TestPerformanceReportMarginFallback(t *testing.T) {
	d := export.SummaryData{
		Project: projects.Project{JobNumber: "24-300", JobName: "Dry Job", Status: projects.StatusActive},
	}
	var buf bytes.Buffer
	if err := export.WritePerformanceReport(&buf, d); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(buf.String(), "Profit Margin:   0.0%") {
		t.Fatalf("no-billings margin not rendered as 0.0%%:\n%s", buf.String())
	}
}

func TestPerformanceReportThousandsSeparators(t *testing.T) {
	d := export.SummaryData{
		Project: projects.Project{JobNumber: "24-301", JobName: "Big Job", TotalContractValue: 1234567.89},
	}
	var buf bytes.Buffer
	if err := export.WritePerformanceReport(&buf, d); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(buf.String(), "$1,234,567.89") {
		t.Fatalf("contract value not grouped:\n%s", buf.String())
	}
}

func TestPerformanceReportLaborLedgerTabs(t *testing.T) {
	d := export.SummaryData{
		Project: projects.Project{JobNumber: "24-302"},
		LaborEntries: []costs.Entry{
			{Date: "2025-01-10", EmployeeName: "Sam Reyes", StHours: 8, StRate: 45},
		},
	}
	var buf bytes.Buffer
	if err := export.WritePerformanceReport(&buf, d); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(buf.String(), "2025-01-10\tSam Reyes\t8\t45") {
		t.Fatalf("labor ledger not tab separated:\n%s", buf.String())
	}
}

func TestSummaryCSV(t *testing.T) {
	d := export.SummaryData{
		Project: projects.Project{
			JobNumber:     "24-303",
			JobName:       "Rack",
			Customer:      "Delta Energy",
			FieldShopBoth: "Shop",
		},
		GeneratedAt: time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
		Lines: []export.CategoryLine{
			{Label: "Material", Total: 100, Budget: 200, Variance: 100},
		},
		TotalCosts:   100,
		TotalBudget:  200,
		TotalBilled:  500,
		GrossProfit:  400,
		ProfitMargin: 0.8,
	}
	var buf bytes.Buffer
	if err := export.WriteSummaryCSV(&buf, d); err != nil {
		t.Fatalf("write summary csv: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Field/Shop/Both,Shop",
		"Total Billed,500.00",
		"Report Date,2026-02-14",
		"Material,100.00,200.00,100.00",
		"Profit Margin,80.0%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary csv missing %q:\n%s", want, out)
		}
	}
}
