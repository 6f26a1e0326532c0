package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bakmodel/src/artifact"
	dir "bakmodel/src/backend/directory"
	"bakmodel/src/backup"
	"bakmodel/src/config"
	"bakmodel/src/errdefs"
	"bakmodel/src/report"
	"bakmodel/src/safety"
)

func newRestoreCmd(stdout, stderr io.Writer) *cobra.Command {
	var snapVersion, dest string
	var unverified bool
	cmd := &cobra.Command{
		Use:   "restore NAME",
		Short: "Restore a model from its backup snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tgt, err := resolveTarget(cmd, cfg)
			if err != nil {
				return err
			}
			snapDir, err := resolveSnapshotDir(tgt.DirPath, args[0], snapVersion)
			if err != nil {
				return err
			}

			opts := getSafetyOptions(cmd)
			ropts := backup.RestoreOptions{
				DestDir:         dest,
				AllowUnverified: unverified || opts.Force,
				Progress:        stdout,
			}
			targets, err := backup.RestoreTargets(snapDir, ropts)
			if err != nil {
				return err
			}
			if opts.DryRun {
				renderRestorePreview(stdout, args[0], filepath.Base(snapDir), targets)
				return nil
			}
			ok, err := confirmOverwrite(opts, cmd.InOrStdin(), stdout, targets)
			if err != nil || !ok {
				return err
			}
			rep := newConsoleReporter(cmd, stdout, stderr, cfg)
			return restoreWithVerifyGate(opts, ropts, cmd.InOrStdin(), stdout, rep, snapDir)
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVar(&snapVersion, "version", "", "Snapshot timestamp (default: latest)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination directory (default: the recorded source directory)")
	cmd.Flags().BoolVar(&unverified, "unverified", false, "Allow restoring files that have no integrity record")
	return cmd
}

// resolveSnapshotDir locates the snapshot to restore: the newest one by
// default, or the one matching --version. The model name may be given in
// display form ("llama3:8b").
func resolveSnapshotDir(root, name, version string) (string, error) {
	be, err := dir.New(root)
	if err != nil {
		return "", err
	}
	snaps, err := be.ListModel(artifact.SafeName(name))
	if err != nil {
		return "", err
	}
	if len(snaps) == 0 {
		return "", fmt.Errorf("%w: no backups of %s under %s", errdefs.ErrNoModels, name, root)
	}
	if version == "" {
		return snaps[len(snaps)-1].Path, nil
	}
	for _, s := range snaps {
		if s.Timestamp == version {
			return s.Path, nil
		}
	}
	return "", fmt.Errorf("%w: no snapshot %s of %s", errdefs.ErrNoModels, version, name)
}

// confirmOverwrite asks before clobbering files that already exist at the
// restore destination. Force skips the question.
func confirmOverwrite(opts safety.Options, in io.Reader, out io.Writer, targets []string) (bool, error) {
	var existing []string
	for _, p := range targets {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 || opts.Force {
		return true, nil
	}
	return safety.Confirmf(opts, in, out, "Overwrite %d existing file(s)?", len(existing))
}

// restoreWithVerifyGate restores snapDir. When files lack an integrity
// record the user is asked once whether to proceed without verification;
// declining keeps the failure.
func restoreWithVerifyGate(opts safety.Options, ropts backup.RestoreOptions, in io.Reader, out io.Writer, rep report.Reporter, snapDir string) error {
	res, err := backup.RestoreSnapshot(snapDir, ropts)
	if errors.Is(err, errdefs.ErrNoRecord) && !ropts.AllowUnverified {
		rep.Warn("%v", err)
		ok, cerr := safety.Confirm(opts, in, out, "No integrity record for some files. Restore without verification?")
		if cerr != nil {
			return cerr
		}
		if !ok {
			return err
		}
		ropts.AllowUnverified = true
		res, err = backup.RestoreSnapshot(snapDir, ropts)
	}
	if err != nil {
		return err
	}
	if res.DigestVerified != nil && *res.DigestVerified {
		rep.Success("%s: %s (checksums verified)", res.Name, res.Message)
	} else {
		rep.Warn("%s: %s (restored without verification)", res.Name, res.Message)
	}
	return nil
}

func renderRestorePreview(w io.Writer, name, version string, targets []string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tDESTINATION\tACTION")
	for _, p := range targets {
		fmt.Fprintf(tw, "%s\t%s\t%s\trestore\n", name, version, p)
	}
	_ = tw.Flush()
}
