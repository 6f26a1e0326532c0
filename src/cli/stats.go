package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lxc/incus/shared/units"
	"github.com/spf13/cobra"

	"bakmodel/src/backup"
	"bakmodel/src/config"
)

func newStatsCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show backup store totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tgt, err := resolveTarget(cmd, cfg)
			if err != nil {
				return err
			}
			s, err := backup.Collect(tgt.DirPath)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			case "table", "":
				return renderStatsTable(stdout, s)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderStatsTable(w io.Writer, s backup.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODELS\tSNAPSHOTS\tFILES\tSIZE")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", s.Models, s.Snapshots, s.Files, units.GetByteSizeString(s.TotalBytes, 2))
	return tw.Flush()
}
