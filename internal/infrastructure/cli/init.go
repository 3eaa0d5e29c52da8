package cli

import (
	"fmt"

	"github.com/felixgeelhaar/evmkit/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var initSample bool

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a new evmkit workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		name := "portfolio"
		if len(args) > 0 {
			name = args[0]
		}

		pf, err := services.Init.InitializeWorkspace(name, initSample)
		if err != nil {
			return err
		}
		if err := config.SaveAlertConfig(services.Workspace.Root, services.Workspace.Alerts); err != nil {
			return fmt.Errorf("failed to write alert config: %w", err)
		}

		fmt.Printf("Successfully initialized evmkit workspace: %s (%d projects)\n", pf.Name, len(pf.Projects))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSample, "sample", false, "Seed the portfolio with demo projects")
	RootCmd.AddCommand(initCmd)
}
