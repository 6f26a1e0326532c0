package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lxc/incus/shared/units"
	"github.com/spf13/cobra"

	"bakmodel/src/artifact"
	dir "bakmodel/src/backend/directory"
	"bakmodel/src/backup"
	"bakmodel/src/config"
	"bakmodel/src/errdefs"
	"bakmodel/src/ollama"
	"bakmodel/src/prompt"
)

// runInteractive drives the numbered chooser shown when bakmodel runs
// without a subcommand. The loop keeps going until the user quits; a
// failed action is reported and returns to the menu.
func runInteractive(cmd *cobra.Command, stdout, stderr io.Writer) error {
	in := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "bakmodel")
		fmt.Fprintln(stdout, "  1) Back up model files from a directory")
		fmt.Fprintln(stdout, "  2) Back up ollama models")
		fmt.Fprintln(stdout, "  3) Restore a backup")
		fmt.Fprintln(stdout, "  4) List backups")
		fmt.Fprintln(stdout, "  5) Verify backups")
		fmt.Fprintln(stdout, "  6) Show stats")
		fmt.Fprintln(stdout, "  7) Quit")
		fmt.Fprint(stdout, "Select: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return nil // EOF quits
		}
		var actionErr error
		switch strings.TrimSpace(line) {
		case "1":
			actionErr = interactiveBackupDir(cmd, in, stdout, stderr)
		case "2":
			actionErr = interactiveBackupOllama(cmd, in, stdout, stderr)
		case "3":
			actionErr = interactiveRestore(cmd, in, stdout, stderr)
		case "4":
			actionErr = interactiveList(cmd, stdout)
		case "5":
			actionErr = interactiveVerify(cmd, stdout)
		case "6":
			actionErr = interactiveStats(cmd, stdout)
		case "7", "q", "quit", "":
			return nil
		default:
			fmt.Fprintf(stderr, "invalid choice %q\n", strings.TrimSpace(line))
			continue
		}
		if actionErr != nil && !errors.Is(actionErr, errdefs.ErrAborted) {
			fmt.Fprintln(stderr, actionErr)
		}
	}
}

func interactiveBackupDir(cmd *cobra.Command, in *bufio.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	srcDir := cfg.SourceDir
	if srcDir == "" {
		srcDir, err = readLine(in, stdout, "Model directory: ")
		if err != nil {
			return err
		}
		if srcDir == "" {
			return errdefs.ErrAborted
		}
	}
	arts, err := artifact.List(srcDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nModel files in %s:\n", srcDir)
	for i, a := range arts {
		fmt.Fprintf(stdout, "  %d) %s (%s)\n", i+1, a.Name, units.GetByteSizeString(a.SizeBytes, 2))
	}
	line, err := readLine(in, stdout, "Select models to back up (e.g. 1,3 / a = all / q = quit): ")
	if err != nil {
		return err
	}
	idxs, err := prompt.ParseSelection(line, len(arts))
	if err != nil {
		return err
	}
	picked := make([]artifact.Artifact, 0, len(idxs))
	for _, i := range idxs {
		picked = append(picked, arts[i])
	}

	tgt, err := resolveTarget(cmd, cfg)
	if err != nil {
		return err
	}
	opts := getSafetyOptions(cmd)
	if opts.DryRun {
		renderBackupPreview(stdout, picked, tgt.DirPath)
		return nil
	}
	rep := newConsoleReporter(cmd, stdout, stderr, cfg)
	return summarize(backup.BackupAll(tgt.DirPath, picked, stdout, rep))
}

func interactiveBackupOllama(cmd *cobra.Command, in *bufio.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := connectOllama(cmd, cfg.OllamaModels)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	models, err := client.List(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return fmt.Errorf("%w: ollama reports no installed models", errdefs.ErrNoModels)
	}

	fmt.Fprintln(stdout, "\nInstalled ollama models:")
	for i, m := range models {
		fmt.Fprintf(stdout, "  %d) %s (%s)\n", i+1, m.Name, units.GetByteSizeString(m.SizeBytes, 2))
	}
	line, err := readLine(in, stdout, "Select models to back up (e.g. 1,3 / a = all / q = quit): ")
	if err != nil {
		return err
	}
	idxs, err := prompt.ParseSelection(line, len(models))
	if err != nil {
		return err
	}
	picked := make([]ollama.Model, 0, len(idxs))
	for _, i := range idxs {
		picked = append(picked, models[i])
	}

	tgt, err := resolveTarget(cmd, cfg)
	if err != nil {
		return err
	}
	opts := getSafetyOptions(cmd)
	if opts.DryRun {
		renderOllamaPreview(stdout, picked, tgt.DirPath)
		return nil
	}
	rep := newConsoleReporter(cmd, stdout, stderr, cfg)
	return summarize(backup.BackupAllOllama(tgt.DirPath, client, picked, stdout, rep))
}

func interactiveRestore(cmd *cobra.Command, in *bufio.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tgt, err := resolveTarget(cmd, cfg)
	if err != nil {
		return err
	}
	be, err := dir.New(tgt.DirPath)
	if err != nil {
		return err
	}
	snaps, err := be.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("%w: no backups under %s", errdefs.ErrNoModels, tgt.DirPath)
	}

	fmt.Fprintf(stdout, "\nBackups in %s:\n", tgt.DirPath)
	for i, s := range snaps {
		fmt.Fprintf(stdout, "  %d) %s %s\n", i+1, s.Name, s.Timestamp)
	}
	line, err := readLine(in, stdout, "Select a backup to restore (q = quit): ")
	if err != nil {
		return err
	}
	idx, err := prompt.ParseSingle(line, len(snaps))
	if err != nil {
		return err
	}
	snap := snaps[idx]

	opts := getSafetyOptions(cmd)
	ropts := backup.RestoreOptions{Progress: stdout, AllowUnverified: opts.Force}
	targets, err := backup.RestoreTargets(snap.Path, ropts)
	if err != nil {
		return err
	}
	if opts.DryRun {
		renderRestorePreview(stdout, snap.Name, snap.Timestamp, targets)
		return nil
	}
	ok, err := confirmOverwrite(opts, in, stdout, targets)
	if err != nil || !ok {
		return err
	}
	rep := newConsoleReporter(cmd, stdout, stderr, cfg)
	return restoreWithVerifyGate(opts, ropts, in, stdout, rep, snap.Path)
}

func interactiveList(cmd *cobra.Command, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tgt, err := resolveTarget(cmd, cfg)
	if err != nil {
		return err
	}
	entries, err := collectListEntries(tgt.DirPath, "")
	if err != nil {
		return err
	}
	return renderListTable(stdout, entries)
}

func interactiveVerify(cmd *cobra.Command, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tgt, err := resolveTarget(cmd, cfg)
	if err != nil {
		return err
	}
	results, err := backup.VerifyAll(tgt.DirPath, "")
	if err != nil {
		return err
	}
	if err := renderVerifyTable(stdout, results); err != nil {
		return err
	}
	return verificationError(results)
}

func interactiveStats(cmd *cobra.Command, stdout io.Writer) error {
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
	return renderStatsTable(stdout, s)
}

// readLine prompts and reads one line. EOF before any input aborts.
func readLine(in *bufio.Reader, out io.Writer, promptText string) (string, error) {
	fmt.Fprint(out, promptText)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", errdefs.ErrAborted
	}
	return strings.TrimSpace(line), nil
}
