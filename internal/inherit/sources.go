package inherit

import (
	"io/fs"
	"os"
)

// MacroLookup expands preprocessor macros used in inherit statements.
type MacroLookup interface {
	Macro(name string) (string, bool)
}

// FileSystem answers existence queries for candidate paths.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}

// ContentProvider returns the current text of a file, which may be an unsaved
// editor buffer.
type ContentProvider interface {
	Content(path string) ([]byte, error)
}

// OS serves FileSystem and ContentProvider from the local disk.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OS) Content(path string) ([]byte, error) { return os.ReadFile(path) }

type noMacros struct{}

func (noMacros) Macro(string) (string, bool) { return "", false }
