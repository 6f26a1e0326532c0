package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lxc/incus/shared/units"
	"github.com/spf13/cobra"

	"bakmodel/src/artifact"
	"bakmodel/src/backend"
	dir "bakmodel/src/backend/directory"
	"bakmodel/src/backup"
	"bakmodel/src/config"
)

func newListCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list [NAME]",
		Short: "List backed-up models and their snapshots",
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
			entries, err := collectListEntries(tgt.DirPath, name)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "table", "":
				return renderListTable(stdout, entries)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

type listEntry struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Files     int    `json:"files"`
	SizeBytes int64  `json:"sizeBytes"`
	Path      string `json:"path"`
}

func collectListEntries(root, name string) ([]listEntry, error) {
	be, err := dir.New(root)
	if err != nil {
		return nil, err
	}
	var snaps []backend.Snapshot
	if name == "" {
		snaps, err = be.List()
	} else {
		snaps, err = be.ListModel(artifact.SafeName(name))
	}
	if err != nil {
		return nil, err
	}

	entries := make([]listEntry, 0, len(snaps))
	for _, s := range snaps {
		e := listEntry{Name: s.Name, Timestamp: s.Timestamp, Type: "-", Path: s.Path}
		if mf, err := backup.LoadManifest(s.Path); err == nil {
			e.Name = mf.Name
			e.Type = mf.Type
			e.Files = len(mf.Files)
			for _, f := range mf.Files {
				e.SizeBytes += f.SizeBytes
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func renderListTable(w io.Writer, entries []listEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTIMESTAMP\tTYPE\tFILES\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Name, e.Timestamp, e.Type, e.Files, units.GetByteSizeString(e.SizeBytes, 2))
	}
	return tw.Flush()
}
