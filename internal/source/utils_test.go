package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "lib")

	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"nested", filepath.Join(base, "std", "room.c"), "std/room.c"},
		{"base itself", base, "."},
		{"sibling falls back to absolute", filepath.Join(tmp, "other", "x.c"), normalizePath(filepath.Join(tmp, "other", "x.c"))},
		{"dotted target is cleaned", filepath.Join(base, "d", "..", "room.c"), "room.c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RelativePath(tc.target, base)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := RelativePath("", base)
	assert.Error(t, err)
}

func TestNormalizeStripsBOMAndFoldsCRLF(t *testing.T) {
	in := []byte("\xEF\xBB\xBFint x;\r\nint y;\rint z;\r\n")
	assert.Equal(t, "int x;\nint y;\rint z;\n", string(Normalize(in)))

	plain := []byte("int x;\n")
	assert.Equal(t, plain, Normalize(plain))
}
