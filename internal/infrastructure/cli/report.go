package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <project-id>",
	Short: "Full earned value report: summary, metrics, trends, alerts, forecasts and variances",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		report, err := services.EVM.ProjectReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if outputJSON {
			return printJSON(report)
		}
		fmt.Print(renderReport(report))
		return nil
	},
}

func renderReport(r *application.Report) string {
	var b strings.Builder
	name := r.ProjectName
	if name == "" {
		name = r.ProjectID
	}
	fmt.Fprintf(&b, "%s\n", heading(fmt.Sprintf("EVM Report: %s (%s)", name, r.ReportDate.Format("2006-01-02"))))

	fmt.Fprintf(&b, "\nHealth: %s  Risk: %s\n", colorHealth(r.Summary.OverallHealth), r.Summary.RiskLevel)
	for _, f := range r.Summary.KeyFindings {
		fmt.Fprintf(&b, "  * %s\n", f)
	}
	for _, rec := range r.Summary.Recommendations {
		fmt.Fprintf(&b, "  -> %s\n", rec)
	}

	fmt.Fprintf(&b, "\n%s\n", renderMetrics(r.Metrics))
	fmt.Fprintf(&b, "\nTrends: cost %s, schedule %s, overall %s\n", r.Trends.Cost, r.Trends.Schedule, r.Trends.Overall)
	fmt.Fprintf(&b, "Cost:     %s (%s, %.1f%% of BAC)\n", r.Cost.Status, formatMoney(r.Cost.Variance), r.Cost.VariancePercentage)
	fmt.Fprintf(&b, "Schedule: %s (%s, %+.0f days)\n", r.Schedule.Status, formatMoney(r.Schedule.Variance), r.Schedule.VarianceDays)

	fmt.Fprintf(&b, "\n%s\n", renderAlerts(r.Alerts))
	b.WriteString(renderForecasts(r.Forecasts))

	if cats := r.Variance.Cost.Categories; len(cats) > 0 {
		fmt.Fprintf(&b, "\nCost by category:\n")
		for _, c := range cats {
			fmt.Fprintf(&b, "  %-16s planned %s  actual %s  variance %s\n", c.Category, formatMoney(c.Planned), formatMoney(c.Actual), formatMoney(c.Variance))
		}
	}
	if delayed := r.Variance.Schedule.DelayedTasks; len(delayed) > 0 {
		fmt.Fprintf(&b, "\nDelayed tasks:\n")
		for _, d := range delayed {
			fmt.Fprintf(&b, "  %-16s %.1f%% behind plan (%.0f days)\n", d.TaskID, d.LagPercent, d.LagDays)
		}
	}
	return b.String()
}

func init() {
	RootCmd.AddCommand(reportCmd)
}
