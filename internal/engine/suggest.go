package engine

import (
	"cmp"
	"slices"

	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.7

// Suggest proposes up to n visible names close to an unresolved name, best first.
func (e *Engine) Suggest(doc, name string, offset uint32, n int) []string {
	if name == "" || n <= 0 {
		return nil
	}
	type scored struct {
		name  string
		score float32
	}
	var cands []scored
	for _, m := range e.SymbolsVisible(doc, offset) {
		cand := m.Symbol.Name
		if cand == name {
			continue
		}
		score, err := edlib.StringsSimilarity(name, cand, edlib.JaroWinkler)
		if err != nil || score < suggestThreshold {
			continue
		}
		cands = append(cands, scored{cand, score})
	}
	slices.SortFunc(cands, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	out := make([]string, 0, min(n, len(cands)))
	for _, c := range cands[:min(n, len(cands))] {
		out = append(out, c.name)
	}
	return out
}
