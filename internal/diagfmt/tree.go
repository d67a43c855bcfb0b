package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lpcls/internal/source"
	"lpcls/internal/symbols"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// TreeOpts configures ScopeTree.
type TreeOpts struct {
	Color bool
	// Symbols lists declarations under each scope.
	Symbols bool
}

// ScopeTree draws the scope tree of table with spans as line:col ranges.
func ScopeTree(w io.Writer, table *symbols.Table, text *source.Text, opts TreeOpts) error {
	scopeColor := color.New(color.FgCyan, color.Bold)
	kindColor := color.New(color.FgYellow)
	if opts.Color {
		scopeColor.EnableColor()
		kindColor.EnableColor()
	} else {
		scopeColor.DisableColor()
		kindColor.DisableColor()
	}

	var build func(id symbols.ScopeID) *treeNode
	build = func(id symbols.ScopeID) *treeNode {
		scope := table.Scope(id)
		node := &treeNode{label: fmt.Sprintf("%s %s", scopeColor.Sprint(scope.Name), formatRange(text, scope.Span))}
		if opts.Symbols {
			for _, symID := range scope.Symbols {
				sym := table.Symbol(symID)
				lc := text.LineCol(sym.Span.Start)
				label := fmt.Sprintf("%s %s @%d:%d", kindColor.Sprint(sym.Kind), table.Signature(symID), lc.Line, lc.Col)
				if sym.Inferred {
					label += " (inferred)"
				}
				node.children = append(node.children, &treeNode{label: label})
			}
		}
		for _, child := range scope.Children {
			node.children = append(node.children, build(child))
		}
		return node
	}

	var b strings.Builder
	root := build(table.Root)
	b.WriteString(root.label)
	b.WriteByte('\n')
	renderChildren(&b, root, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func renderChildren(b *strings.Builder, node *treeNode, prefix string) {
	for i, child := range node.children {
		branch, next := "├─ ", "│  "
		if i == len(node.children)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(child.label)
		b.WriteByte('\n')
		renderChildren(b, child, prefix+next)
	}
}

func formatRange(text *source.Text, span source.Span) string {
	start, end := text.LineCol(span.Start), text.LineCol(span.End)
	return fmt.Sprintf("[%d:%d-%d:%d]", start.Line, start.Col, end.Line, end.Col)
}
