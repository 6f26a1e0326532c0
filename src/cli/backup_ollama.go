package cli

import (
	"context"
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
	"bakmodel/src/ollama"
)

func newBackupOllamaCmd(stdout, stderr io.Writer) *cobra.Command {
	var modelsDir string
	cmd := &cobra.Command{
		Use:   "ollama [NAME...]",
		Short: "Back up installed ollama models (all or selected by name)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tgt, err := resolveTarget(cmd, cfg)
			if err != nil {
				return err
			}
			dirOverride := modelsDir
			if dirOverride == "" {
				dirOverride = cfg.OllamaModels
			}
			client, err := connectOllama(cmd, dirOverride)
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
			if len(args) > 0 {
				models, err = pickModelsByName(models, args)
				if err != nil {
					return err
				}
			}

			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				renderOllamaPreview(stdout, models, tgt.DirPath)
				return nil
			}
			rep := newConsoleReporter(cmd, stdout, stderr, cfg)
			return summarize(backup.BackupAllOllama(tgt.DirPath, client, models, stdout, rep))
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Override the ollama models directory")
	return cmd
}

func pickModelsByName(models []ollama.Model, names []string) ([]ollama.Model, error) {
	byName := make(map[string]ollama.Model, len(models))
	for _, m := range models {
		byName[m.Name] = m
	}
	out := make([]ollama.Model, 0, len(names))
	for _, n := range names {
		m, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: no installed ollama model named %s", errdefs.ErrNoModels, n)
		}
		out = append(out, m)
	}
	return out, nil
}

func renderOllamaPreview(w io.Writer, models []ollama.Model, root string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tSIZE\tDESTINATION\tACTION")
	for _, m := range models {
		dest := filepath.Join(root, backend.ModelsSubdir, artifact.SafeName(m.Name))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tbackup\n", m.Name, m.ID, units.GetByteSizeString(m.SizeBytes, 2), dest)
	}
	_ = tw.Flush()
}
