package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <project-id>",
	Short: "Show the earned value metrics of a project",
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
			return printJSON(report.Metrics)
		}
		fmt.Println(heading(fmt.Sprintf("%s: earned value at %s", report.ProjectID, report.Metrics.StatusDate.Format("2006-01-02"))))
		fmt.Println(renderMetrics(report.Metrics))
		fmt.Printf("Health: %s  Risk: %s\n", colorHealth(report.Summary.OverallHealth), report.Summary.RiskLevel)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(metricsCmd)
}
