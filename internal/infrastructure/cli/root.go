package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	projectPath string
	verbose     bool
	outputJSON  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "evmkit",
	Version: Version,
	Short:   "Earned value and portfolio KPI analytics for project workspaces",
	Long: `evmkit tracks project execution with earned value management.
It answers, for every project in a workspace:
1. Are we on budget and on schedule?
2. When will we finish and at what cost?
3. Which portfolio indicators need attention?`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
// Returned errors are mapped to CLIErrors where a hint is available.
func Execute(ctx context.Context) error {
	return MapError(RootCmd.ExecuteContext(ctx))
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectPath, "project", "C", "", "Workspace root (defaults to the current directory)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	RootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output in JSON format")
}
