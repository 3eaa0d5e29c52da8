package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check portfolio.yaml against the schema and the calculation rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		pf, err := services.Workspace.Repo.LoadPortfolio(cmd.Context())
		var schemaErr *storage.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Println(statusErr.Render("portfolio.yaml is invalid:"))
			for _, p := range schemaErr.Problems {
				fmt.Printf("  - %s\n", p)
			}
			return err
		}
		if err != nil {
			return err
		}

		problems := 0
		for _, p := range pf.Projects {
			if !p.HasProgress() {
				continue
			}
			if _, err := services.Calculator.Calculate(p.EVMInput()); err != nil {
				fmt.Printf("  - project %s: %v\n", p.ID, err)
				problems++
			}
		}
		in := kpi.Input{Projects: pf.KPIProjects(), Tasks: pf.Tasks, Timeframe: pf.Timeframe}
		if err := in.Validate(); err != nil {
			fmt.Printf("  - %v\n", err)
			problems++
		}
		if problems > 0 {
			return fmt.Errorf("portfolio has %d invalid section(s)", problems)
		}

		fmt.Println(statusGood.Render(fmt.Sprintf("portfolio.yaml is valid: %d projects, %d tasks", len(pf.Projects), len(pf.Tasks))))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
