package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/evmkit/internal/infrastructure/watch"
	"github.com/felixgeelhaar/evmkit/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute alerts and KPIs whenever the workspace documents change",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return err
		}
		dir := filepath.Join(root, storage.EvmkitDir)

		w, err := watch.New(dir, watch.WithDebounce(watchDebounce))
		if err != nil {
			return fmt.Errorf("%w (run 'evmkit init' first)", err)
		}

		fmt.Printf("Watching %s for changes... (Ctrl+C to stop)\n", dir)
		refresh(cmd.Context(), root)

		err = w.Run(cmd.Context(), func(ctx context.Context, ev watch.Event) {
			fmt.Printf("\n%s changed (%s) at %s\n", filepath.Base(ev.Path), ev.Type, time.Now().Format("15:04:05"))
			refresh(ctx, root)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// refresh rebuilds the services so edits to alerts.yaml take effect too.
func refresh(ctx context.Context, root string) {
	services, err := loadServices(root)
	if err != nil {
		fmt.Printf("Reload failed: %v\n", err)
		return
	}
	printWatchSummary(ctx, services)
}

func printWatchSummary(ctx context.Context, services *wiring.AppServices) {
	alerts, err := services.EVM.WorkspaceAlerts(ctx)
	if err != nil {
		fmt.Println(statusErr.Render(MapError(err).Error()))
		return
	}
	dash, err := services.Portfolio.WorkspaceDashboard(ctx)
	if err != nil {
		fmt.Println(statusErr.Render(MapError(err).Error()))
		return
	}

	fmt.Printf("KPIs: %d computed, %s %d, %s %d\n",
		dash.Summary.Total,
		statusWarn.Render("warning"), dash.Summary.Warning,
		statusErr.Render("critical"), dash.Summary.Critical)
	fmt.Println(renderAlerts(alerts))
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before a change is processed")
	RootCmd.AddCommand(watchCmd)
}
