package token

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanDocBlock strips the comment markers and leading stars of a `/** */`
// block. The result is NFC-normalized.
func cleanDocBlock(text string) string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		out = append(out, strings.TrimSpace(line))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return norm.NFC.String(strings.Join(out, "\n"))
}
