// Package export renders project rollups as printable artifacts: a plain
// text performance report and CSV files for the summary and each cost
// category ledger.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/projects"
)

// CategoryLine is one cost category row of a summary artifact.
type CategoryLine struct {
	Category costs.Category
	Label    string
	Total    float64
	Budget   float64
	Variance float64
}

// SummaryData carries everything the printable exports need. The handler
// assembles it from the computed rollup so this package stays a pure
// renderer.
type SummaryData struct {
	Project            projects.Project
	GrandTotalContract float64
	GeneratedAt        time.Time

	Lines         []CategoryLine
	TotalCosts    float64
	TotalBudget   float64
	TotalVariance float64

	TotalBilled  float64
	GrossProfit  float64
	ProfitMargin float64

	LaborEntries []costs.Entry
}

// WritePerformanceReport renders the plain text project performance report:
// a header block, the cost summary with variances, profitability, and a
// tab-separated labor ledger.
func WritePerformanceReport(w io.Writer, d SummaryData) error {
	pr := message.NewPrinter(language.AmericanEnglish)

	var b strings.Builder
	b.WriteString("PROJECT PERFORMANCE REPORT\n")
	b.WriteString("==========================\n\n")

	b.WriteString(fmt.Sprintf("Job Number:      %s\n", d.Project.JobNumber))
	b.WriteString(fmt.Sprintf("Job Name:        %s\n", d.Project.JobName))
	b.WriteString(fmt.Sprintf("Customer:        %s\n", d.Project.Customer))
	b.WriteString(fmt.Sprintf("Field/Shop/Both: %s\n", d.Project.FieldShopBoth))
	b.WriteString(fmt.Sprintf("Status:          %s\n", d.Project.Status))
	b.WriteString(fmt.Sprintf("Contract Value:  %s\n", money(pr, d.Project.TotalContractValue)))
	b.WriteString(fmt.Sprintf("With Change Orders: %s\n", money(pr, d.GrandTotalContract)))
	b.WriteString(fmt.Sprintf("Total Billed:    %s\n", money(pr, d.TotalBilled)))
	b.WriteString(fmt.Sprintf("Report Date:     %s\n\n", reportDate(d.GeneratedAt)))

	b.WriteString("COST SUMMARY\n")
	b.WriteString("------------\n")
	for _, line := range d.Lines {
		b.WriteString(fmt.Sprintf("%-15s Cost: %-15s Budget: %-15s Variance: %s\n",
			line.Label, money(pr, line.Total), money(pr, line.Budget), money(pr, line.Variance)))
	}
	b.WriteString(fmt.Sprintf("\nTotal Costs:     %s\n", money(pr, d.TotalCosts)))
	b.WriteString(fmt.Sprintf("Total Budget:    %s\n", money(pr, d.TotalBudget)))
	b.WriteString(fmt.Sprintf("Total Variance:  %s\n\n", money(pr, d.TotalVariance)))

	b.WriteString("PROFITABILITY\n")
	b.WriteString("-------------\n")
	b.WriteString(fmt.Sprintf("Billed to Date:  %s\n", money(pr, d.TotalBilled)))
	b.WriteString(fmt.Sprintf("Gross Profit:    %s\n", money(pr, d.GrossProfit)))
	b.WriteString(fmt.Sprintf("Profit Margin:   %s\n\n", Margin(d.ProfitMargin)))

	b.WriteString("LABOR DETAIL\n")
	b.WriteString("------------\n")
	b.WriteString(strings.Join(costs.Describe(costs.CategoryLabor).CSVColumns, "\t"))
	b.WriteString("\n")
	for _, e := range d.LaborEntries {
		fields := []string{
			e.Date,
			e.EmployeeName,
			trimFloat(e.StHours), trimFloat(e.StRate),
			trimFloat(e.OtHours), trimFloat(e.OtRate),
			trimFloat(e.DtHours), trimFloat(e.DtRate),
			trimFloat(e.PerDiem),
			trimFloat(e.MobQty), trimFloat(e.MobRate),
			money(pr, e.LaborCost()),
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Margin formats a profit margin fraction as a percentage with one decimal.
// A zero fraction renders as "0.0%", which is also the no-billings fallback.
func Margin(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

func money(pr *message.Printer, v float64) string {
	return pr.Sprintf("$%v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func reportDate(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.Format("2006-01-02")
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return "0"
	}
	return s
}
