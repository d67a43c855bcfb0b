package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"lpcls/internal/analysis"
	"lpcls/internal/engine"
	"lpcls/internal/inherit"
	"lpcls/internal/observ"
	"lpcls/internal/project"
)

// session is what every subcommand needs: the loaded config, an engine over
// the workspace and the output settings.
type session struct {
	cfg    project.Config
	engine *engine.Engine
	log    *slog.Logger
	timer  *observ.Timer
	color  bool
	out    io.Writer
	errOut io.Writer
	reg    *prometheus.Registry
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	done := timer.Track("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	done(cfg.Path)

	level := cfg.LogLevel()
	levelFlag, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if levelFlag != "" {
		if err := level.UnmarshalText([]byte(levelFlag)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelFlag, err)
		}
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return nil, err
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var disk *inherit.DiskCache
	if cfg.Cache.Disk {
		dir := cfg.Cache.Dir
		if dir == "" {
			if dir, err = inherit.DefaultCacheDir("lpcls"); err != nil {
				return nil, err
			}
		}
		if disk, err = inherit.OpenDiskCache(dir); err != nil {
			return nil, err
		}
		logger.Debug("disk cache enabled", "dir", disk.Dir())
	}

	reg := prometheus.NewRegistry()
	eng, err := engine.New(engine.Options{
		Root:      cfg.Workspace.Root,
		Extension: cfg.Workspace.Extension,
		Macros:    cfg.Macros,
		CacheSize: cfg.Cache.Size,
		Analysis: analysis.Options{
			MaxDiagnostics: maxDiagnostics,
			ScanFunctions:  cfg.ScanFunctions(),
		},
		Disk:       disk,
		Logger:     logger,
		Registerer: reg,
	})
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:    cfg,
		engine: eng,
		log:    logger,
		timer:  timer,
		color:  colored,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		reg:    reg,
	}, nil
}

func loadConfig(cmd *cobra.Command) (project.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return project.Discover(wd)
}

// finish prints the timings when they were requested.
func (s *session) finish() {
	if s.timer == nil {
		return
	}
	fmt.Fprint(s.errOut, s.timer.Summary())
}

// workspaceFiles expands args to matching files. Without args the whole
// workspace is used; directories are walked with the workspace globs.
func (s *session) workspaceFiles(args []string) ([]string, error) {
	m := s.cfg.Matcher()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return m.Files()
	}
	var files []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, abs)
			continue
		}
		sub := m
		sub.Root = abs
		found, err := sub.Files()
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
