package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast <project-id>",
	Short: "Predict project completion cost and date",
	Long: `Forecast shows two completion scenarios for a project:

  current_performance  assumes the current CPI and SPI continue
  planned_performance  assumes the remaining work runs to plan`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

func runForecast(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	report, err := services.EVM.ProjectReport(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(report.Forecasts)
	}

	fmt.Printf("Project Forecast: %s\n", report.ProjectID)
	fmt.Println("------------------")
	fmt.Printf("Budget at Completion: %s\n", formatMoney(report.Metrics.BudgetAtCompletion))
	fmt.Printf("Planned Completion:   %s\n", report.Metrics.PlannedCompletionDate.Format("2006-01-02"))
	fmt.Printf("TCPI:                 %s\n\n", formatIndex(report.Metrics.ToCompletePerformanceIndex))
	fmt.Print(renderForecasts(report.Forecasts))
	return nil
}

func init() {
	RootCmd.AddCommand(forecastCmd)
}
