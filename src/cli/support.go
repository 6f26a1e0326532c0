package cli

import (
	"io"

	"github.com/spf13/cobra"

	"bakmodel/src/config"
	"bakmodel/src/report"
	"bakmodel/src/target"
)

// resolveTarget picks the backup target: the --target flag when given,
// otherwise the configured backup root.
func resolveTarget(cmd *cobra.Command, cfg *config.Config) (target.Target, error) {
	tgtStr, _ := cmd.Flags().GetString("target")
	if tgtStr == "" {
		tgtStr = "dir:" + cfg.BackupRoot
	}
	return target.Parse(tgtStr)
}

// newConsoleReporter builds the console reporter honoring --no-color and
// the configured preference.
func newConsoleReporter(cmd *cobra.Command, stdout, stderr io.Writer, cfg *config.Config) report.Reporter {
	noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	return report.NewConsole(stdout, stderr, noColor || cfg.NoColor)
}
