package project

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lpcls/internal/symbols"
)

// Config is the decoded lpc.toml.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Macros    MacroTable      `toml:"macros"`
	Cache     CacheConfig     `toml:"cache"`
	Analysis  AnalysisConfig  `toml:"analysis"`
	Log       LogConfig       `toml:"log"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type WorkspaceConfig struct {
	Root      string   `toml:"root"`
	Extension string   `toml:"extension"`
	Include   []string `toml:"include"`
	Exclude   []string `toml:"exclude"`
}

type CacheConfig struct {
	Size int    `toml:"size"`
	Disk bool   `toml:"disk"`
	Dir  string `toml:"dir"`
}

type AnalysisConfig struct {
	ScanFunctions []string `toml:"scan_functions"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no lpc.toml exists.
func Default() Config {
	return Config{
		Workspace: WorkspaceConfig{
			Root:      ".",
			Extension: ".c",
			Include:   []string{"**/*.c", "**/*.h"},
		},
		Macros:   MacroTable{},
		Cache:    CacheConfig{Size: 50},
		Analysis: AnalysisConfig{ScanFunctions: []string{"sscanf", "parse_command"}},
		Log:      LogConfig{Level: "info"},
	}
}

// Load decodes the lpc.toml at path over the defaults. The workspace root is
// made absolute relative to the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Cache.Size < 0 {
		return Config{}, fmt.Errorf("%s: [cache].size must not be negative", path)
	}
	if cfg.Workspace.Extension != "" && !strings.HasPrefix(cfg.Workspace.Extension, ".") {
		cfg.Workspace.Extension = "." + cfg.Workspace.Extension
	}
	if cfg.Macros == nil {
		cfg.Macros = MacroTable{}
	}
	cfg.Path = path
	cfg.Workspace.Root = resolveRoot(filepath.Dir(path), cfg.Workspace.Root)
	return cfg, nil
}

// Discover finds and loads the lpc.toml above startDir. Without one it returns
// the defaults rooted at startDir.
func Discover(startDir string) (Config, error) {
	path, err := FindConfig(startDir)
	if errors.Is(err, ErrNoConfig) {
		cfg := Default()
		abs, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return Config{}, fmt.Errorf("failed to resolve start directory: %w", absErr)
		}
		cfg.Workspace.Root = abs
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func resolveRoot(base, root string) string {
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(base, filepath.FromSlash(root))
	}
	return filepath.Clean(root)
}

// ScanFunctions converts the configured names for the scope builder.
func (c Config) ScanFunctions() []symbols.ScanFunction {
	if c.Analysis.ScanFunctions == nil {
		return nil
	}
	return symbols.ScanFunctionsByName(c.Analysis.ScanFunctions)
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
