package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bakmodel/src/config"
	"bakmodel/src/logging"
)

// NewRootCmd returns the root cobra command for the bakmodel CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bakmodel",
		Short: "Back up and restore locally stored AI models with checksum verification",
		Long: "bakmodel copies local model files and installed ollama models into\n" +
			"timestamped snapshots with sha256 records, and restores them only\n" +
			"after the stored digests check out.\n\n" +
			"Run without a subcommand to pick models interactively.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(debug, cfg.LogFile)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newBackupCmd(stdout, stderr))
	cmd.AddCommand(newRestoreCmd(stdout, stderr))
	cmd.AddCommand(newListCmd(stdout, stderr))
	cmd.AddCommand(newVerifyCmd(stdout, stderr))
	cmd.AddCommand(newPruneCmd(stdout, stderr))
	cmd.AddCommand(newStatsCmd(stdout, stderr))

	return cmd
}

// Execute runs the CLI with the process stdio and returns the process exit
// code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCodeFromError(err)
	}
	return 0
}
