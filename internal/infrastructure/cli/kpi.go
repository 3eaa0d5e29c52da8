package cli

import (
	"fmt"

	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	kpiOrgRoot  string
	kpiOrgFrom  string
	kpiOrgTo    string
	kpiCategory string
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Compute the portfolio KPI dashboard",
	Long: `Compute the banded portfolio indicators of this workspace.

With --org every workspace below the given directory is merged into one
dashboard; project ids are prefixed with their workspace path below that
directory. Workspace timeframes are not merged: --from and --to bound the
reporting period of the org view and are open when omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if kpiCategory != "" && !knownCategory(kpi.Category(kpiCategory)) {
			return fmt.Errorf("unknown category %q", kpiCategory)
		}

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		var dash *kpi.Dashboard
		if kpiOrgRoot != "" {
			tf, tfErr := orgTimeframe(kpiOrgFrom, kpiOrgTo)
			if tfErr != nil {
				return tfErr
			}
			dash, err = services.Portfolio.OrgDashboard(cmd.Context(), kpiOrgRoot, tf)
		} else {
			dash, err = services.Portfolio.WorkspaceDashboard(cmd.Context())
		}
		if err != nil {
			return err
		}

		if kpiCategory != "" {
			results := categoryResults(dash, kpi.Category(kpiCategory))
			if outputJSON {
				return printJSON(results)
			}
			fmt.Println(staticTable(kpiColumns, kpiRows(results)))
			return nil
		}

		if outputJSON {
			return printJSON(dash)
		}
		fmt.Print(renderDashboard(dash))
		return nil
	},
}

func orgTimeframe(from, to string) (kpi.Timeframe, error) {
	start, err := storage.ParseDate(from)
	if err != nil {
		return kpi.Timeframe{}, fmt.Errorf("--from: %w", err)
	}
	end, err := storage.ParseDate(to)
	if err != nil {
		return kpi.Timeframe{}, fmt.Errorf("--to: %w", err)
	}
	return kpi.Timeframe{Start: start, End: end}, nil
}

func knownCategory(c kpi.Category) bool {
	for _, k := range kpi.Categories {
		if k == c {
			return true
		}
	}
	return false
}

func categoryResults(d *kpi.Dashboard, c kpi.Category) []kpi.Result {
	out := []kpi.Result{}
	for _, r := range d.All() {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

func init() {
	kpiCmd.Flags().StringVar(&kpiOrgRoot, "org", "", "Merge every workspace below this directory")
	kpiCmd.Flags().StringVar(&kpiOrgFrom, "from", "", "Start of the org reporting period (YYYY-MM-DD)")
	kpiCmd.Flags().StringVar(&kpiOrgTo, "to", "", "End of the org reporting period (YYYY-MM-DD)")
	kpiCmd.Flags().StringVar(&kpiCategory, "category", "", "Only show one category (financial, schedule, quality, resources, risk)")
	RootCmd.AddCommand(kpiCmd)
}
