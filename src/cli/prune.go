package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bakmodel/src/artifact"
	"bakmodel/src/backend"
	dir "bakmodel/src/backend/directory"
	"bakmodel/src/config"
	"bakmodel/src/errdefs"
	"bakmodel/src/safety"
)

func newPruneCmd(stdout, stderr io.Writer) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune [NAME]",
		Short: "Delete old snapshots, keeping the most recent N per model",
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
			if !cmd.Flags().Changed("keep") {
				keep = cfg.KeepPerModel
			}
			if keep <= 0 {
				return fmt.Errorf("%w: --keep must be > 0", errdefs.ErrInvalidSelection)
			}
			tgt, err := resolveTarget(cmd, cfg)
			if err != nil {
				return err
			}
			toDelete, err := planPrune(tgt.DirPath, name, keep)
			if err != nil {
				return err
			}

			// Preview
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTIMESTAMP\tACTION")
			for _, p := range toDelete {
				fmt.Fprintf(tw, "%s\t%s\tdelete\n", p.Name, p.Timestamp)
			}
			_ = tw.Flush()

			opts := getSafetyOptions(cmd)
			if opts.DryRun || len(toDelete) == 0 {
				return nil
			}
			ok, err := safety.Confirmf(opts, cmd.InOrStdin(), stdout, "Delete %d snapshot(s)?", len(toDelete))
			if err != nil || !ok {
				return err
			}
			for _, p := range toDelete {
				if err := os.RemoveAll(p.Path); err != nil {
					return fmt.Errorf("%w: delete %s: %v", errdefs.ErrIOFailure, p.Path, err)
				}
			}
			rep := newConsoleReporter(cmd, stdout, stderr, cfg)
			rep.Success("pruned %d snapshot(s)", len(toDelete))
			return nil
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().IntVar(&keep, "keep", 3, "Number of recent snapshots to keep per model")
	return cmd
}

type pruneCandidate struct {
	Name, Timestamp, Path string
}

// planPrune lists the snapshots older than the newest keep per model.
// Timestamps order lexicographically, so the oldest sort first.
func planPrune(root, name string, keep int) ([]pruneCandidate, error) {
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

	byModel := make(map[string][]backend.Snapshot)
	var order []string
	for _, s := range snaps {
		if _, ok := byModel[s.Name]; !ok {
			order = append(order, s.Name)
		}
		byModel[s.Name] = append(byModel[s.Name], s)
	}

	var del []pruneCandidate
	for _, n := range order {
		group := byModel[n]
		if len(group) <= keep {
			continue
		}
		for _, old := range group[:len(group)-keep] {
			del = append(del, pruneCandidate{Name: old.Name, Timestamp: old.Timestamp, Path: old.Path})
		}
	}
	return del, nil
}
