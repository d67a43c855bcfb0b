package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lpcls/internal/diag"
	"lpcls/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes diagnostics in a human-readable form, each as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined ^~~~. Carets are
// aligned by display width, so wide and combining characters stay in place.
func Pretty(w io.Writer, doc Document, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	path := formatPath(doc.Path, opts.PathMode, opts.BaseDir)
	for _, d := range doc.Diagnostics {
		lc := doc.Text.LineCol(d.Primary.Start)
		sev := p.severity(d.Severity)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, lc.Line, lc.Col,
			sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message); err != nil {
			return err
		}
		if err := writeSnippet(w, doc.Text, d.Primary, int(opts.Context), sev, p); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nlc := doc.Text.LineCol(n.Span.Start)
			if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), path, nlc.Line, nlc.Col, n.Msg); err != nil {
				return err
			}
			if err := writeSnippet(w, doc.Text, n.Span, 0, p.note, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSnippet(w io.Writer, text *source.Text, span source.Span, context int, caret *color.Color, p palette) error {
	lc := text.LineCol(span.Start)
	first := max(1, int(lc.Line)-context)
	gutterWidth := len(strconv.Itoa(int(lc.Line)))

	for line := first; line <= int(lc.Line); line++ {
		content := lineText(text, uint32(line))
		if _, err := fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), content); err != nil {
			return err
		}
	}

	content := lineText(text, lc.Line)
	col := min(int(lc.Col)-1, len(content))
	end := col + int(span.Len())
	if end > len(content) {
		end = len(content)
	}
	pad := runewidth.StringWidth(strings.Map(tabToSpace, content[:col]))
	width := max(1, runewidth.StringWidth(content[col:end]))
	marker := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), caret.Sprint(marker))
	return err
}

func tabToSpace(r rune) rune {
	if r == '\t' {
		return ' '
	}
	return r
}

// lineText returns the 1-based line without its terminator.
func lineText(text *source.Text, line uint32) string {
	start := text.OffsetOfLineCol(source.LineCol{Line: line, Col: 1})
	end := start
	for end < text.Len() && text.Content[end] != '\n' {
		end++
	}
	return string(text.Content[start:end])
}
