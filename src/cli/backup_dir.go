package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/lxc/incus/shared/units"
	"github.com/spf13/cobra"

	"bakmodel/src/artifact"
	"bakmodel/src/backend"
	"bakmodel/src/backup"
	"bakmodel/src/config"
	"bakmodel/src/errdefs"
)

func newBackupDirCmd(stdout, stderr io.Writer) *cobra.Command {
	var source string
	var minSize string
	cmd := &cobra.Command{
		Use:   "dir [NAME...]",
		Short: "Back up model files from a local directory (all or selected by name)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tgt, err := resolveTarget(cmd, cfg)
			if err != nil {
				return err
			}
			srcDir := source
			if srcDir == "" {
				srcDir = cfg.SourceDir
			}
			if srcDir == "" {
				return fmt.Errorf("%w: no source directory (use --source or set source_dir)", errdefs.ErrDirectoryNotFound)
			}

			arts, err := artifact.List(srcDir)
			if err != nil {
				return err
			}
			minBytes, err := parseMinSize(minSize)
			if err != nil {
				return err
			}
			arts = artifact.FilterMinSize(arts, minBytes)
			if len(arts) == 0 {
				return fmt.Errorf("%w: no model files of at least %s in %s", errdefs.ErrNoModels, minSize, srcDir)
			}
			if len(args) > 0 {
				arts, err = pickByName(arts, args)
				if err != nil {
					return err
				}
			}

			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				renderBackupPreview(stdout, arts, tgt.DirPath)
				return nil
			}
			rep := newConsoleReporter(cmd, stdout, stderr, cfg)
			return summarize(backup.BackupAll(tgt.DirPath, arts, stdout, rep))
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVar(&source, "source", "", "Directory holding the model files")
	cmd.Flags().StringVar(&minSize, "min-size", "", "Skip files smaller than this size (e.g. 100MB)")
	return cmd
}

// parseMinSize converts a --min-size value like "100MB" to bytes. Empty
// means no threshold.
func parseMinSize(minSize string) (int64, error) {
	if minSize == "" {
		return 0, nil
	}
	n, err := units.ParseByteSizeString(minSize)
	if err != nil {
		return 0, fmt.Errorf("%w: --min-size %q: %v", errdefs.ErrInvalidSelection, minSize, err)
	}
	return n, nil
}

// pickByName filters artifacts down to the named ones, in the order they
// were named. An unknown name fails the whole command.
func pickByName(arts []artifact.Artifact, names []string) ([]artifact.Artifact, error) {
	byName := make(map[string]artifact.Artifact, len(arts))
	for _, a := range arts {
		byName[a.Name] = a
	}
	out := make([]artifact.Artifact, 0, len(names))
	for _, n := range names {
		a, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: no model file named %s", errdefs.ErrNoModels, n)
		}
		out = append(out, a)
	}
	return out, nil
}

// summarize folds batch results into the command error. Partial failure
// is still failure; the per-artifact outcomes were already reported.
func summarize(results []backup.Result) error {
	failed := 0
	for _, r := range results {
		if !r.Succeeded {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d backups failed", failed, len(results))
	}
	return nil
}

func renderBackupPreview(w io.Writer, arts []artifact.Artifact, root string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tDESTINATION\tACTION")
	for _, a := range arts {
		dest := filepath.Join(root, backend.ModelsSubdir, artifact.SafeName(a.Name))
		fmt.Fprintf(tw, "%s\t%s\t%s\tbackup\n", a.Name, units.GetByteSizeString(a.SizeBytes, 2), dest)
	}
	_ = tw.Flush()
}
