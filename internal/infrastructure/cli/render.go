package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
)

// Styles
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var statusGood = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var statusWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var statusErr = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// staticTable renders rows once, without the interactive selection highlight.
func staticTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}

func heading(title string) string {
	return headerStyle.Render(title)
}

func colorSeverity(s evm.Severity) string {
	switch s {
	case evm.SeverityCritical:
		return statusErr.Render(string(s))
	case evm.SeverityHigh, evm.SeverityMedium:
		return statusWarn.Render(string(s))
	default:
		return dimStyle.Render(string(s))
	}
}

func colorHealth(h evm.HealthStatus) string {
	switch h {
	case evm.HealthExcellent, evm.HealthGood:
		return statusGood.Render(string(h))
	case evm.HealthWarning:
		return statusWarn.Render(string(h))
	default:
		return statusErr.Render(string(h))
	}
}

func colorStatus(s kpi.Status) string {
	switch s {
	case kpi.StatusExcellent, kpi.StatusGood:
		return statusGood.Render(string(s))
	case kpi.StatusWarning:
		return statusWarn.Render(string(s))
	default:
		return statusErr.Render(string(s))
	}
}

func formatIndex(v float64) string {
	if math.IsInf(v, 1) {
		return "unbounded"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatValue(r kpi.Result) string {
	switch r.Unit {
	case "%":
		return fmt.Sprintf("%.1f%%", r.Value)
	case "":
		return fmt.Sprintf("%.2f", r.Value)
	default:
		return fmt.Sprintf("%.2f %s", r.Value, r.Unit)
	}
}

func metricsRows(m evm.Metrics) []table.Row {
	return []table.Row{
		{"Planned Value (PV)", formatMoney(m.PlannedValue)},
		{"Earned Value (EV)", formatMoney(m.EarnedValue)},
		{"Actual Cost (AC)", formatMoney(m.ActualCost)},
		{"Budget at Completion (BAC)", formatMoney(m.BudgetAtCompletion)},
		{"Cost Variance (CV)", formatMoney(m.CostVariance)},
		{"Schedule Variance (SV)", formatMoney(m.ScheduleVariance)},
		{"CPI", formatIndex(m.CostPerformanceIndex)},
		{"SPI", formatIndex(m.SchedulePerformanceIndex)},
		{"Estimate at Completion (EAC)", formatMoney(m.EstimateAtCompletion)},
		{"Estimate to Complete (ETC)", formatMoney(m.EstimateToComplete)},
		{"Variance at Completion (VAC)", formatMoney(m.VarianceAtCompletion)},
		{"TCPI", formatIndex(m.ToCompletePerformanceIndex)},
		{"Percent Complete", fmt.Sprintf("%.1f%%", m.PercentComplete)},
		{"Percent Planned", fmt.Sprintf("%.1f%%", m.PercentPlanned)},
		{"Forecast Completion", m.ForecastCompletionDate.Format("2006-01-02")},
	}
}

func renderMetrics(m evm.Metrics) string {
	return staticTable([]table.Column{
		{Title: "Metric", Width: 30},
		{Title: "Value", Width: 18},
	}, metricsRows(m))
}

func renderAlerts(alerts []evm.Alert) string {
	if len(alerts) == 0 {
		return statusGood.Render("No alerts. All indices are within thresholds.")
	}
	rows := make([]table.Row, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, table.Row{a.ProjectID, string(a.Severity), string(a.Type), a.Title})
	}
	var b strings.Builder
	b.WriteString(staticTable([]table.Column{
		{Title: "Project", Width: 16},
		{Title: "Severity", Width: 10},
		{Title: "Type", Width: 20},
		{Title: "Title", Width: 36},
	}, rows))
	b.WriteString("\n")
	for _, a := range alerts {
		fmt.Fprintf(&b, "[%s] %s\n", colorSeverity(a.Severity), a.Message)
	}
	return b.String()
}

func renderForecasts(scenarios []evm.ForecastScenario) string {
	var b strings.Builder
	for _, f := range scenarios {
		fmt.Fprintf(&b, "%s\n", heading(string(f.Method)))
		fmt.Fprintf(&b, "  EAC:         %s\n", formatMoney(f.EstimateAtCompletion))
		fmt.Fprintf(&b, "  ETC:         %s\n", formatMoney(f.EstimateToComplete))
		fmt.Fprintf(&b, "  Completion:  %s\n", f.ForecastCompletionDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "  Confidence:  %.0f%%\n", f.Confidence)
		for _, a := range f.Assumptions {
			fmt.Fprintf(&b, "  - %s\n", a)
		}
	}
	return b.String()
}

func kpiRows(results []kpi.Result) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, table.Row{
			string(r.Category),
			r.Name,
			formatValue(r),
			fmt.Sprintf("%g", r.Target),
			string(r.Status),
			string(r.Trend),
		})
	}
	return rows
}

var kpiColumns = []table.Column{
	{Title: "Category", Width: 10},
	{Title: "Indicator", Width: 28},
	{Title: "Value", Width: 14},
	{Title: "Target", Width: 8},
	{Title: "Status", Width: 10},
	{Title: "Trend", Width: 7},
}

func renderDashboard(d *kpi.Dashboard) string {
	var b strings.Builder
	s := d.Summary
	fmt.Fprintf(&b, "%s\n", heading(fmt.Sprintf("Portfolio KPIs (%d)", s.Total)))
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d  %s %d\n",
		statusGood.Render("excellent"), s.Excellent,
		statusGood.Render("good"), s.Good,
		statusWarn.Render("warning"), s.Warning,
		statusErr.Render("critical"), s.Critical)
	b.WriteString(staticTable(kpiColumns, kpiRows(d.All())))
	b.WriteString("\n")
	for _, r := range d.Alerts.Critical {
		fmt.Fprintf(&b, "[%s] %s: %s (target %g)\n", colorStatus(r.Status), r.Name, formatValue(r), r.Target)
	}
	if len(d.Unavailable) > 0 {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render("Not enough data for: "+strings.Join(d.Unavailable, ", ")))
	}
	return b.String()
}
