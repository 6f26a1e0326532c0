package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newBackupCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create checksum-recorded model backups",
	}

	cmd.AddCommand(newBackupDirCmd(stdout, stderr))
	cmd.AddCommand(newBackupOllamaCmd(stdout, stderr))
	cmd.AddCommand(newBackupAllCmd(stdout, stderr))

	return cmd
}
