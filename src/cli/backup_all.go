package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bakmodel/src/artifact"
	"bakmodel/src/backup"
	"bakmodel/src/config"
	"bakmodel/src/errdefs"
	"bakmodel/src/ollama"
)

// ollamaBatch pairs a connected client with the models to back up
// through it.
type ollamaBatch struct {
	client ollama.Client
	models []ollama.Model
}

func newBackupAllCmd(stdout, stderr io.Writer) *cobra.Command {
	var source, modelsDir string
	var minSize string
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Back up every local model file and every ollama model",
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
			rep := newConsoleReporter(cmd, stdout, stderr, cfg)
			opts := getSafetyOptions(cmd)

			// Model files
			var arts []artifact.Artifact
			srcDir := source
			if srcDir == "" {
				srcDir = cfg.SourceDir
			}
			if srcDir != "" {
				arts, err = artifact.List(srcDir)
				switch {
				case errors.Is(err, errdefs.ErrNoModels):
					rep.Warn("no model files in %s", srcDir)
				case err != nil:
					return err
				default:
					minBytes, err := parseMinSize(minSize)
					if err != nil {
						return err
					}
					arts = artifact.FilterMinSize(arts, minBytes)
				}
			}

			// Ollama models; a host without ollama is not an error here.
			var ob *ollamaBatch
			dirOverride := modelsDir
			if dirOverride == "" {
				dirOverride = cfg.OllamaModels
			}
			client, err := connectOllama(cmd, dirOverride)
			if err != nil {
				rep.Warn("skipping ollama models: %v", err)
			} else {
				ctx := cmd.Context()
				if ctx == nil {
					ctx = context.Background()
				}
				listed, err := client.List(ctx)
				if err != nil {
					rep.Warn("skipping ollama models: %v", err)
				} else if len(listed) == 0 {
					rep.Info("no ollama models installed")
				} else {
					ob = &ollamaBatch{client: client, models: listed}
				}
			}

			if len(arts) == 0 && ob == nil {
				return fmt.Errorf("%w: nothing to back up", errdefs.ErrNoModels)
			}
			if opts.DryRun {
				if len(arts) > 0 {
					renderBackupPreview(stdout, arts, tgt.DirPath)
				}
				if ob != nil {
					renderOllamaPreview(stdout, ob.models, tgt.DirPath)
				}
				return nil
			}

			var results []backup.Result
			if len(arts) > 0 {
				fmt.Fprintf(stdout, "[1/2] Backing up model files (count=%d)\n", len(arts))
				results = append(results, backup.BackupAll(tgt.DirPath, arts, stdout, rep)...)
			}
			if ob != nil {
				fmt.Fprintf(stdout, "[2/2] Backing up ollama models (count=%d)\n", len(ob.models))
				results = append(results, backup.BackupAllOllama(tgt.DirPath, ob.client, ob.models, stdout, rep)...)
			}
			return summarize(results)
		},
	}
	cmd.Flags().String("target", "", "Backup target URI (e.g., dir:/path)")
	cmd.Flags().StringVar(&source, "source", "", "Directory holding the model files")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Override the ollama models directory")
	cmd.Flags().StringVar(&minSize, "min-size", "", "Skip files smaller than this size (e.g. 100MB)")
	return cmd
}
