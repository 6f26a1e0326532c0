package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bakmodel/src/backup"
	"bakmodel/src/config"
	"bakmodel/src/errdefs"
)

func newVerifyCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "verify [NAME]",
		Short: "Verify snapshot checksums in the backup store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tgt, err := resolveTarget(cmd, cfg)
			if err != nil {
				return err
			}
			results, err := backup.VerifyAll(tgt.DirPath, name)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			case "table", "":
				if err := renderVerifyTable(stdout, results); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
			return verificationError(results)
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderVerifyTable(w io.Writer, results []backup.VerifyResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTIMESTAMP\tTYPE\tSTATUS\tDETAIL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Timestamp, r.Type, r.Status, r.Detail)
	}
	return tw.Flush()
}

// verificationError folds per-snapshot statuses into the command result.
// Any damaged snapshot outranks snapshots that merely lack records.
func verificationError(results []backup.VerifyResult) error {
	var damaged, unrecorded int
	for _, r := range results {
		switch r.Status {
		case backup.StatusOK:
		case backup.StatusNoData:
			unrecorded++
		default:
			damaged++
		}
	}
	switch {
	case damaged > 0:
		return fmt.Errorf("%w: %d of %d snapshots failed verification", errdefs.ErrIntegrityCheckFailed, damaged, len(results))
	case unrecorded > 0:
		return fmt.Errorf("%w: %d of %d snapshots have no verification data", errdefs.ErrNoRecord, unrecorded, len(results))
	default:
		return nil
	}
}
