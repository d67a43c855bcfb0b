package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lpcls/internal/analysis"
	"lpcls/internal/diagfmt"
	"lpcls/internal/engine"
	"lpcls/internal/source"
)

func newScopesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopes [flags] <file.c>",
		Short: "Print the scope tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withSymbols, err := cmd.Flags().GetBool("symbols")
			if err != nil {
				return fmt.Errorf("failed to get symbols flag: %w", err)
			}
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			if format != "tree" && format != "json" {
				return fmt.Errorf("unknown format %q (must be tree or json)", format)
			}
			s, doc, res, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.finish()
			if format == "json" {
				return diagfmt.SemanticsJSON(s.out, s.displayPath(doc), res.Table)
			}
			return diagfmt.ScopeTree(s.out, res.Table, res.Text, diagfmt.TreeOpts{Color: s.color, Symbols: withSymbols})
		},
	}
	cmd.Flags().Bool("symbols", true, "list declarations under each scope")
	cmd.Flags().String("format", "tree", "output format (tree|json)")
	return cmd
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file.c:line:col> [name|a->b->c]",
		Short: "Find the declaration of a name",
		Long: `Without a name the identifier under the position is resolved, including member accesses,
scoped calls and inherit statements. With a name it is looked up as seen from the position;
a -> chain resolves each step as a member of the previous type`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runResolve,
	}
	cmd.Flags().Int("suggest", 3, "number of suggestions shown for unresolved names")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	suggestN, err := cmd.Flags().GetInt("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	loc, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	s, doc, res, err := openDocument(cmd, loc.path)
	if err != nil {
		return err
	}
	defer s.finish()
	offset := res.Text.OffsetOfLineCol(loc.pos)

	done := s.timer.Track("resolve")
	var (
		m     engine.Match
		found bool
		name  string
	)
	if len(args) == 2 {
		name = args[1]
		m, found = s.engine.ResolveChain(doc, strings.Split(name, "->"), offset)
	} else {
		m, found = s.engine.Definition(doc, offset)
	}
	done("")

	if !found {
		fmt.Fprintln(s.out, "unresolved")
		if name != "" && !strings.Contains(name, "->") {
			if hints := s.engine.Suggest(doc, name, offset, suggestN); len(hints) > 0 {
				fmt.Fprintf(s.out, "did you mean: %s\n", strings.Join(hints, ", "))
			}
		}
		return errFindings
	}
	if !m.Found() {
		fmt.Fprintf(s.out, "%s (inherited file)\n", s.displayPath(m.Path))
		return nil
	}
	s.printMatch(m)
	if m.Symbol.Doc != "" {
		fmt.Fprintln(s.out, m.Symbol.Doc)
	}
	return nil
}

func newReferencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "references [flags] <file.c:line:col>",
		Short: "List the uses in a file of the name under a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withDecl, err := cmd.Flags().GetBool("declaration")
			if err != nil {
				return fmt.Errorf("failed to get declaration flag: %w", err)
			}
			loc, err := parseLocation(args[0])
			if err != nil {
				return err
			}
			s, doc, res, err := openDocument(cmd, loc.path)
			if err != nil {
				return err
			}
			defer s.finish()

			done := s.timer.Track("references")
			refs := s.engine.References(doc, res.Text.OffsetOfLineCol(loc.pos), withDecl)
			done(fmt.Sprintf("%d found", len(refs)))
			if len(refs) == 0 {
				fmt.Fprintln(s.out, "unresolved")
				return errFindings
			}
			for _, ref := range refs {
				text := res.Text
				if ref.Path != doc {
					content, err := s.engine.Content(ref.Path)
					if err != nil {
						return fmt.Errorf("read %s: %w", ref.Path, err)
					}
					text = source.NewText(content)
				}
				lc := text.LineCol(ref.Span.Start)
				line := fmt.Sprintf("%s:%d:%d", s.displayPath(ref.Path), lc.Line, lc.Col)
				if ref.Decl {
					line += " (declaration)"
				}
				fmt.Fprintln(s.out, line)
			}
			return nil
		},
	}
	cmd.Flags().Bool("declaration", true, "include the declaration")
	return cmd
}

func newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [flags] <file.c:line:col>",
		Short: "List the names visible at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := cmd.Flags().GetString("prefix")
			if err != nil {
				return fmt.Errorf("failed to get prefix flag: %w", err)
			}
			loc, err := parseLocation(args[0])
			if err != nil {
				return err
			}
			s, doc, res, err := openDocument(cmd, loc.path)
			if err != nil {
				return err
			}
			defer s.finish()
			offset := res.Text.OffsetOfLineCol(loc.pos)
			for _, m := range s.engine.SymbolsVisible(doc, offset) {
				if strings.HasPrefix(m.Symbol.Name, prefix) {
					s.printMatch(m)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("prefix", "", "only names starting with prefix")
	return cmd
}

func newMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <file.c> <type>",
		Short: "List the members of a struct or class visible from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, doc, _, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.finish()
			members := s.engine.MembersOf(doc, args[1])
			if len(members) == 0 {
				fmt.Fprintf(s.out, "no members for %s\n", args[1])
				return errFindings
			}
			for _, m := range members {
				s.printMatch(m)
			}
			return nil
		},
	}
}

func newInheritsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inherits [flags] <file.c>",
		Short: "List the inherit statements or the resolved inheritance chain of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := cmd.Flags().GetBool("chain")
			if err != nil {
				return fmt.Errorf("failed to get chain flag: %w", err)
			}
			s, doc, _, err := openDocument(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.finish()
			if !chain {
				for _, ref := range s.engine.InheritedFiles(doc) {
					fmt.Fprintln(s.out, ref)
				}
				return nil
			}
			done := s.timer.Track("inherit")
			paths := s.engine.InheritanceChain(doc)
			done(fmt.Sprintf("%d files", len(paths)))
			for _, p := range paths {
				fmt.Fprintln(s.out, s.displayPath(p))
			}
			return nil
		},
	}
	cmd.Flags().Bool("chain", false, "resolve the transitive chain depth-first")
	return cmd
}

// openDocument starts a session and analyzes path from disk.
// The returned path is absolute and identifies the document in engine queries.
func openDocument(cmd *cobra.Command, path string) (*session, string, *analysis.Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	s, err := newSession(cmd)
	if err != nil {
		return nil, "", nil, err
	}
	done := s.timer.Track("analyze")
	res, err := s.engine.Open(abs)
	if err != nil {
		return nil, "", nil, err
	}
	done(filepath.Base(abs))
	return s, abs, res, nil
}

// printMatch writes "path:line:col kind signature" for a found match.
func (s *session) printMatch(m engine.Match) {
	where := s.displayPath(m.Path)
	if content, err := s.engine.Content(m.Path); err == nil {
		lc := source.NewText(content).LineCol(m.Symbol.Span.Start)
		where = fmt.Sprintf("%s:%d:%d", where, lc.Line, lc.Col)
	}
	kind := color.New(color.FgYellow)
	if s.color {
		kind.EnableColor()
	} else {
		kind.DisableColor()
	}
	fmt.Fprintf(s.out, "%s %s %s\n", where, kind.Sprint(m.Symbol.Kind), m.Signature())
}

func (s *session) displayPath(path string) string {
	if rel, err := source.RelativePath(path, s.cfg.Workspace.Root); err == nil {
		return rel
	}
	return path
}
