package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lpcls/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags]",
		Short: "Re-check workspace files as they change",
		Long:  `Check the workspace once, then watch it and re-check every changed file until interrupted`,
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("metrics", false, "print analysis cache counters after each batch")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a batch of changes is checked")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	matcher := s.cfg.Matcher()
	if err := matcher.Validate(); err != nil {
		return err
	}
	w, err := watch.New(matcher.Root, watch.Options{
		Debounce: debounce,
		Filter:   matcher,
		SkipDir:  matcher.SkipDir,
		Logger:   s.log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := matcher.Files()
	if err != nil {
		return err
	}
	if err := s.recheck(ctx, files, opts); err != nil {
		return err
	}
	s.log.Info("watching", "root", matcher.Root)
	return w.Run(ctx, func(paths []string) {
		if err := s.recheck(ctx, paths, opts); err != nil {
			s.log.Error("check failed", "err", err)
		}
	})
}

// recheck drops stale state of paths and checks the ones that still exist.
func (s *session) recheck(ctx context.Context, paths []string, opts checkOptions) error {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		s.engine.FileChanged(p)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			s.engine.Invalidate(p)
			s.log.Info("file removed", "path", s.displayPath(p))
			continue
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 || ctx.Err() != nil {
		return nil
	}
	docs, err := s.checkFiles(ctx, existing, opts, nil)
	if err != nil {
		return err
	}
	if err := s.report(docs, opts); err != nil {
		return err
	}
	if opts.metrics {
		s.printMetrics()
	}
	return nil
}
