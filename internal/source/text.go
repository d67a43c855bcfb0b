package source

import (
	"unicode/utf8"

	"fortio.org/safecast"
)

// LineCol is a human-readable position (CLI output, golden files).
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, bytes
}

// Position is an editor position: 0-based line and UTF-16 code unit column.
type Position struct {
	Line      uint32
	Character uint32
}

// Text is a normalized document with a newline index.
type Text struct {
	Content []byte
	LineIdx []uint32
}

// NewText normalizes content and indexes its line breaks.
func NewText(content []byte) *Text {
	content = Normalize(content)
	return &Text{
		Content: content,
		LineIdx: buildLineIndex(content),
	}
}

// Len returns the content length in bytes.
func (t *Text) Len() uint32 {
	n, err := safecast.Conv[uint32](len(t.Content))
	if err != nil {
		return ^uint32(0)
	}
	return n
}

// Slice returns the source text covered by span, clamped to the content.
func (t *Text) Slice(span Span) string {
	end := min(span.End, t.Len())
	if span.Start >= end {
		return ""
	}
	return string(t.Content[span.Start:end])
}

// LineCol converts a byte offset to a 1-based line/column pair.
func (t *Text) LineCol(off uint32) LineCol {
	return toLineCol(t.LineIdx, min(off, t.Len()))
}

func (t *Text) lineBounds(line uint32) (start, end uint32, ok bool) {
	if int(line) > len(t.LineIdx) {
		return 0, 0, false
	}
	if line > 0 {
		start = t.LineIdx[line-1] + 1
	}
	end = t.Len()
	if int(line) < len(t.LineIdx) {
		end = t.LineIdx[line]
	}
	return start, end, true
}

// OffsetOfLineCol converts a 1-based line/byte column to an offset. Columns past the
// end of the line clamp to the line end; lines past the end clamp to the content end.
func (t *Text) OffsetOfLineCol(lc LineCol) uint32 {
	if lc.Line == 0 {
		return 0
	}
	start, end, ok := t.lineBounds(lc.Line - 1)
	if !ok {
		return t.Len()
	}
	col := lc.Col
	if col == 0 {
		col = 1
	}
	return min(start+col-1, end)
}

// Position converts a byte offset to an editor position.
func (t *Text) Position(off uint32) Position {
	off = min(off, t.Len())
	lc := toLineCol(t.LineIdx, off)
	line := lc.Line - 1
	start, _, _ := t.lineBounds(line)
	var units uint32
	for i := start; i < off; {
		r, size := utf8.DecodeRune(t.Content[i:off])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += uint32(size)
	}
	return Position{Line: line, Character: units}
}

// Offset converts an editor position to a byte offset, clamping out-of-range values.
func (t *Text) Offset(pos Position) uint32 {
	start, end, ok := t.lineBounds(pos.Line)
	if !ok {
		return t.Len()
	}
	var units uint32
	off := start
	for off < end && units < pos.Character {
		r, size := utf8.DecodeRune(t.Content[off:end])
		need := uint32(1)
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += uint32(size)
	}
	return off
}
