package cli

import (
	"fmt"

	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/spf13/cobra"
)

var alertsMinSeverity string

var alertsCmd = &cobra.Command{
	Use:   "alerts [project-id]",
	Short: "List threshold and trend alerts for one project or the whole workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		var alerts []evm.Alert
		if len(args) == 1 {
			report, err := services.EVM.ProjectReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			alerts = report.Alerts
		} else {
			alerts, err = services.EVM.WorkspaceAlerts(cmd.Context())
			if err != nil {
				return err
			}
		}

		alerts, err = filterAlerts(alerts, alertsMinSeverity)
		if err != nil {
			return err
		}

		if outputJSON {
			return printJSON(alerts)
		}
		fmt.Println(renderAlerts(alerts))
		return nil
	},
}

var severityRank = map[evm.Severity]int{
	evm.SeverityLow:      0,
	evm.SeverityMedium:   1,
	evm.SeverityHigh:     2,
	evm.SeverityCritical: 3,
}

func filterAlerts(alerts []evm.Alert, min string) ([]evm.Alert, error) {
	if min == "" {
		return alerts, nil
	}
	floor, ok := severityRank[evm.Severity(min)]
	if !ok {
		return nil, fmt.Errorf("unknown severity %q: want low, medium, high or critical", min)
	}
	out := []evm.Alert{}
	for _, a := range alerts {
		if severityRank[a.Severity] >= floor {
			out = append(out, a)
		}
	}
	return out, nil
}

func init() {
	alertsCmd.Flags().StringVar(&alertsMinSeverity, "min-severity", "", "Only show alerts at or above this severity")
	RootCmd.AddCommand(alertsCmd)
}
