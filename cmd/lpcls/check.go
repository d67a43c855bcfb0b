package main

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lpcls/internal/diag"
	"lpcls/internal/diagfmt"
	"lpcls/internal/project/dag"
	"lpcls/internal/source"
	"lpcls/internal/ui"
	"lpcls/internal/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.c|directory]...",
		Short: "Report syntax and scope diagnostics of workspace files",
		Long:  `Analyze the given files, or every workspace file when none are given, and report diagnostics including unresolved inherits and inheritance cycles`,
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("metrics", false, "print analysis cache counters after the run")
	cmd.Flags().String("ui", "off", "show an interactive progress view (auto|on|off)")
	return cmd
}

type checkOptions struct {
	format     string
	jobs       int
	noWarnings bool
	withNotes  bool
	pathMode   diagfmt.PathMode
	metrics    bool
	ui         uiMode
}

func readCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions
	var err error
	flags := cmd.Flags()
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch opts.format {
	case "pretty", "json", "sarif", "short":
	default:
		return opts, fmt.Errorf("unknown format %q (must be pretty, json, sarif or short)", opts.format)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.jobs <= 0 {
		opts.jobs = runtime.GOMAXPROCS(0)
	}
	if opts.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return opts, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	mode, err := flags.GetString("path-mode")
	if err != nil {
		return opts, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	opts.pathMode = diagfmt.ParsePathMode(mode)
	if opts.metrics, err = flags.GetBool("metrics"); err != nil {
		return opts, fmt.Errorf("failed to get metrics flag: %w", err)
	}
	if flags.Lookup("ui") != nil {
		value, err := flags.GetString("ui")
		if err != nil {
			return opts, fmt.Errorf("failed to get ui flag: %w", err)
		}
		if opts.ui, err = readUIMode(value); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish()

	done := s.timer.Track("scan")
	files, err := s.workspaceFiles(args)
	if err != nil {
		return err
	}
	done(fmt.Sprintf("%d files", len(files)))

	done = s.timer.Track("analyze")
	var docs []diagfmt.Document
	if shouldUseTUI(opts.ui) && opts.format == "pretty" {
		docs, err = s.checkFilesWithUI(cmd.Context(), files, opts)
	} else {
		docs, err = s.checkFiles(cmd.Context(), files, opts, nil)
	}
	if err != nil {
		return err
	}
	done("")

	done = s.timer.Track("report")
	err = s.report(docs, opts)
	done("")
	if err != nil {
		return err
	}
	if opts.metrics {
		s.printMetrics()
	}
	for _, doc := range docs {
		for _, d := range doc.Diagnostics {
			if d.Severity >= diag.SevError {
				return errFindings
			}
		}
	}
	return nil
}

// checkFiles analyzes files in parallel; the result keeps the input order.
// progress, when set, is called from the workers.
func (s *session) checkFiles(ctx context.Context, files []string, opts checkOptions, progress func(ui.Event)) ([]diagfmt.Document, error) {
	if progress == nil {
		progress = func(ui.Event) {}
	}
	docs := make([]diagfmt.Document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for i, path := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			progress(ui.Event{File: path, Status: ui.StatusWorking})
			res, diags, err := s.engine.Check(path)
			if err != nil {
				progress(ui.Event{File: path, Status: ui.StatusError})
				return err
			}
			if opts.noWarnings {
				diags = slices.DeleteFunc(diags, func(d diag.Diagnostic) bool { return d.Severity < diag.SevError })
			}
			docs[i] = diagfmt.Document{Path: path, Text: res.Text, Diagnostics: diags}
			progress(finishedEvent(path, diags))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !opts.noWarnings {
		s.reportInheritCycles(docs)
	}
	return docs, nil
}

// reportInheritCycles adds a warning to every checked file whose inherits
// close a cycle among the checked files.
func (s *session) reportInheritCycles(docs []diagfmt.Document) {
	bags := make([]*diag.Bag, len(docs))
	nodes := make([]dag.FileNode, len(docs))
	for i, doc := range docs {
		bags[i] = diag.NewBag(0)
		nodes[i] = dag.FileNode{
			Path:     doc.Path,
			Inherits: s.engine.ResolvedInherits(doc.Path),
			Reporter: diag.BagReporter{Bag: bags[i]},
		}
	}
	idx := dag.BuildIndex(nodes)
	graph, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(graph)
	if !topo.Cyclic {
		return
	}
	s.log.Debug("inheritance cycle", "files", len(topo.Cycles))
	dag.ReportCycles(idx, slots, topo)
	for i, bag := range bags {
		docs[i].Diagnostics = append(docs[i].Diagnostics, bag.Items()...)
	}
}

func finishedEvent(path string, diags []diag.Diagnostic) ui.Event {
	ev := ui.Event{File: path, Status: ui.StatusDone}
	for _, d := range diags {
		switch {
		case d.Severity >= diag.SevError:
			ev.Errors++
		case d.Severity == diag.SevWarning:
			ev.Warnings++
		}
	}
	if ev.Errors > 0 {
		ev.Status = ui.StatusError
	}
	return ev
}

func (s *session) report(docs []diagfmt.Document, opts checkOptions) error {
	base := s.cfg.Workspace.Root
	switch opts.format {
	case "json":
		return diagfmt.JSON(s.out, docs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode,
			BaseDir:          base,
			IncludeNotes:     opts.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(s.out, docs, diagfmt.SarifRunMeta{
			ToolName:    "lpcls",
			ToolVersion: version.Version,
			PathMode:    opts.pathMode,
			BaseDir:     base,
		})
	case "short":
		for _, doc := range docs {
			rel := doc.Path
			if r, err := source.RelativePath(doc.Path, base); err == nil {
				rel = r
			}
			if out := diag.FormatShort(rel, doc.Text, doc.Diagnostics, opts.withNotes); out != "" {
				fmt.Fprintln(s.out, out)
			}
		}
		return nil
	}
	total := 0
	for _, doc := range docs {
		if len(doc.Diagnostics) == 0 {
			continue
		}
		total += len(doc.Diagnostics)
		err := diagfmt.Pretty(s.out, doc, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  opts.pathMode,
			BaseDir:   base,
			ShowNotes: opts.withNotes,
		})
		if err != nil {
			return err
		}
	}
	if total == 0 {
		fmt.Fprintf(s.out, "%d files checked, no diagnostics\n", len(docs))
	}
	return nil
}

func (s *session) printMetrics() {
	families, err := s.reg.Gather()
	if err != nil {
		s.log.Warn("metrics unavailable", "err", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(s.errOut, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(s.errOut, "%s_count %d\n", name, m.GetHistogram().GetSampleCount())
			}
		}
	}
}
