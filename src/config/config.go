// Package config resolves bakmodel settings from defaults, an optional
// config file, and environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const envPrefix = "BAKMODEL"

// Config holds user-tunable settings. Precedence, ascending: built-in
// defaults, config.yaml in the user config dir, BAKMODEL_* environment
// variables. Command-line flags override all of these at the CLI layer.
type Config struct {
	// SourceDir is the default directory scanned for model files.
	SourceDir string `mapstructure:"source_dir"`
	// BackupRoot is the default backup target directory.
	BackupRoot string `mapstructure:"backup_root"`
	// OllamaModels overrides the ollama models directory.
	OllamaModels string `mapstructure:"ollama_models"`
	// KeepPerModel is the default number of snapshots prune retains.
	KeepPerModel int `mapstructure:"keep_per_model"`
	// LogFile, when set, receives a rotated copy of diagnostic logs.
	LogFile string `mapstructure:"log_file"`
	// NoColor disables ANSI colors in console output.
	NoColor bool `mapstructure:"no_color"`
}

// Load resolves the effective configuration.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("source_dir", "")
	v.SetDefault("backup_root", DefaultBackupRoot())
	v.SetDefault("ollama_models", "")
	v.SetDefault("keep_per_model", 3)
	v.SetDefault("log_file", "")
	v.SetDefault("no_color", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "bakmodel"))
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultBackupRoot returns the backup root used when none is configured:
// a ModelBakup directory under the user's home.
func DefaultBackupRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ModelBakup"
	}
	return filepath.Join(home, "ModelBakup")
}
