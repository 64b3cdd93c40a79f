// Package cli implements the toolcost command line: batch evaluation of scenario
// files, distance/hole conversion and preset catalog maintenance.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Simplici0/toolcost/internal/logging"
)

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "toolcost",
		Short: "Compare cutting-tool consumption costs",
		Long: `Estimates how many inserts, tips, bodies and holders a machining job consumes
and ranks the candidate tools by cost per meter.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), "text", logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newEvaluateCmd(),
		newConvertCmd(),
		newPresetsCmd(),
		newMigrateCmd(),
	)
	return root
}
