package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

// DefaultBenchDir is the directory holding the built-in benchmark programs,
// relative to the work directory.
const DefaultBenchDir = "BFBench-1.4"

// FileConfig is the on-disk shape of a catalog file
type FileConfig struct {
	Name     string       `yaml:"name"`
	BenchDir string       `yaml:"bench_dir,omitempty"`
	Cases    []CaseConfig `yaml:"cases"`
}

// CaseConfig describes one case in a catalog file. ExpectedOutput and
// ExpectedFile are mutually exclusive; leaving both unset makes the case
// informational.
type CaseConfig struct {
	Name           string         `yaml:"name"`
	Program        string         `yaml:"program"`
	Stdin          string         `yaml:"stdin,omitempty"`
	ExpectedOutput *string        `yaml:"expected_output,omitempty"`
	ExpectedFile   string         `yaml:"expected_file,omitempty"`
	Timeout        *time.Duration `yaml:"timeout,omitempty"`
}

// Config contains catalog loading configuration
type Config struct {
	Log log.Logger
	// Path of a YAML catalog. Empty selects the built-in catalog.
	Path string
	// BenchDir overrides the catalog's bench_dir when set.
	BenchDir string
	// BaseDir anchors relative bench directories. Defaults to the process
	// working directory.
	BaseDir string
}

// Catalog is an ordered, validated list of cases with resolved paths
type Catalog struct {
	Name     string
	BenchDir string
	Cases    []types.BenchmarkCase
}

// Load reads the catalog selected by cfg and resolves every program and
// expected file against the bench directory.
func Load(cfg Config) (*Catalog, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	if cfg.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.BaseDir = wd
	}

	if cfg.Path == "" {
		benchDir := resolveDir(cfg.BaseDir, cfg.BenchDir, DefaultBenchDir)
		cat := Default(benchDir)
		cfg.Log.Debug("Using built-in catalog", "name", cat.Name, "bench_dir", benchDir, "cases", len(cat.Cases))
		return cat, nil
	}

	fileCfg, err := loadConfig(cfg.Log, cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := fileCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", cfg.Path, err)
	}

	var benchDir string
	if cfg.BenchDir != "" {
		benchDir = resolveDir(cfg.BaseDir, cfg.BenchDir, "")
	} else {
		// bench_dir in a file is relative to the file itself
		benchDir = resolveDir(filepath.Dir(cfg.Path), fileCfg.BenchDir, ".")
		if !filepath.IsAbs(benchDir) {
			benchDir = filepath.Join(cfg.BaseDir, benchDir)
		}
	}

	cat := &Catalog{
		Name:     fileCfg.Name,
		BenchDir: benchDir,
		Cases:    make([]types.BenchmarkCase, 0, len(fileCfg.Cases)),
	}
	for _, c := range fileCfg.Cases {
		cat.Cases = append(cat.Cases, c.toCase(benchDir))
	}
	cfg.Log.Debug("Catalog loaded", "path", cfg.Path, "name", cat.Name, "bench_dir", benchDir, "cases", len(cat.Cases))
	return cat, nil
}

// Validate checks the catalog for missing fields, duplicate names and
// conflicting expectations.
func (f *FileConfig) Validate() error {
	if len(f.Cases) == 0 {
		return fmt.Errorf("catalog has no cases")
	}
	seen := make(map[string]bool, len(f.Cases))
	for i, c := range f.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("case %q: duplicate name", c.Name)
		}
		seen[c.Name] = true
		if c.Program == "" {
			return fmt.Errorf("case %q: program is required", c.Name)
		}
		if c.ExpectedOutput != nil && c.ExpectedFile != "" {
			return fmt.Errorf("case %q: expected_output and expected_file are mutually exclusive", c.Name)
		}
		if c.Timeout != nil && *c.Timeout < 0 {
			return fmt.Errorf("case %q: timeout cannot be negative", c.Name)
		}
	}
	return nil
}

func (c CaseConfig) toCase(benchDir string) types.BenchmarkCase {
	expectation := types.NoExpectation()
	switch {
	case c.ExpectedOutput != nil:
		expectation = types.InlineExpectedText(*c.ExpectedOutput)
	case c.ExpectedFile != "":
		expectation = types.ExpectedFileRef(joinPath(benchDir, c.ExpectedFile))
	}

	var timeout time.Duration
	if c.Timeout != nil {
		timeout = *c.Timeout
	}

	var stdin []byte
	if c.Stdin != "" {
		stdin = []byte(c.Stdin)
	}

	return types.BenchmarkCase{
		Name:        c.Name,
		ProgramPath: joinPath(benchDir, c.Program),
		Stdin:       stdin,
		Expectation: expectation,
		Timeout:     timeout,
	}
}

// loadConfig loads a catalog from a file
func loadConfig(logger log.Logger, path string) (*FileConfig, error) {
	logger.Debug("Reading catalog file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	return &cfg, nil
}

func resolveDir(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	return joinPath(base, dir)
}

func joinPath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
