package main

import (
	"fmt"
	"strconv"
	"strings"

	"lpcls/internal/source"
)

// location is a FILE:LINE:COL argument with 1-based line and byte column.
type location struct {
	path string
	pos  source.LineCol
}

func parseLocation(arg string) (location, error) {
	rest, colText, ok := cutLast(arg)
	if !ok {
		return location{}, fmt.Errorf("location %q: want FILE:LINE:COL", arg)
	}
	path, lineText, ok := cutLast(rest)
	if !ok || path == "" {
		return location{}, fmt.Errorf("location %q: want FILE:LINE:COL", arg)
	}
	line, err := strconv.ParseUint(lineText, 10, 32)
	if err != nil || line == 0 {
		return location{}, fmt.Errorf("location %q: bad line %q", arg, lineText)
	}
	col, err := strconv.ParseUint(colText, 10, 32)
	if err != nil || col == 0 {
		return location{}, fmt.Errorf("location %q: bad column %q", arg, colText)
	}
	return location{path: path, pos: source.LineCol{Line: uint32(line), Col: uint32(col)}}, nil
}

func cutLast(s string) (before, after string, ok bool) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}
