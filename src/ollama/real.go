package ollama

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"bakmodel/src/errdefs"
)

// listRegexp matches the NAME, ID and SIZE columns of `ollama list`.
var listRegexp = regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\d+(?:\.\d+)?)\s*([TGMK]?B)`)

// BinClient implements Client by shelling out to the ollama CLI.
type BinClient struct {
	bin       string
	modelsDir string
}

// NewBinClient builds a Client around the detected binary. The models
// directory resolves from the OLLAMA_MODELS environment variable, then
// the explicit override, then ~/.ollama/models.
func NewBinClient(info BinaryInfo, modelsDirOverride string) *BinClient {
	return &BinClient{bin: info.Path, modelsDir: ResolveModelsDir(modelsDirOverride)}
}

// ResolveModelsDir applies the models directory precedence without
// touching the ollama binary.
func ResolveModelsDir(override string) string {
	if env := os.Getenv("OLLAMA_MODELS"); env != "" {
		return env
	}
	if override != "" {
		return override
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ollama", "models")
	}
	return filepath.Join(home, ".ollama", "models")
}

func (c *BinClient) ModelsDir() string {
	return c.modelsDir
}

// List runs `ollama list` and parses its table output.
func (c *BinClient) List(ctx context.Context) ([]Model, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, c.bin, "list").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ollama list failed: %v", errdefs.ErrOllamaUnavailable, err)
	}
	return ParseList(string(out)), nil
}

// ParseList extracts models from `ollama list` table output. The header
// and any non-row lines are skipped; rows are returned sorted by name so
// selection by index stays deterministic.
func ParseList(out string) []Model {
	var models []Model
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToUpper(line), "NAME") {
			continue
		}
		m := listRegexp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		size, err := parseSize(m[3], m[4])
		if err != nil {
			log.WithField("line", line).WithError(err).Debug("unparseable model size")
		}
		models = append(models, Model{Name: m[1], ID: m[2], SizeBytes: size})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models
}

// parseSize converts a value/unit pair like ("4.7", "GB") to bytes.
// Ollama prints decimal units.
func parseSize(value, unit string) (int64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	mult, ok := map[string]float64{
		"B": 1, "KB": 1e3, "MB": 1e6, "GB": 1e9, "TB": 1e12,
	}[strings.ToUpper(unit)]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q", unit)
	}
	return int64(f * mult), nil
}
