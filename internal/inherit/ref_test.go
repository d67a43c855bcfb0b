package inherit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type macroMap map[string]string

func (m macroMap) Macro(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func TestExpand(t *testing.T) {
	macros := macroMap{
		"ROOM":  `"/std/room"`,
		"DIR":   `"/d/town/"`,
		"BARE":  `/std/bare`,
		"NEST":  `DIR "inn"`,
		"LOOP":  `LOOP`,
		"LOOP2": `"x" LOOP2`,
	}
	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{`"/std/room"`, "/std/room", true},
		{`"room.c"`, "room.c", true},
		{`ROOM`, "/std/room", true},
		{`DIR "shop"`, "/d/town/shop", true},
		{`DIR + "shop"`, "/d/town/shop", true},
		{`BARE`, "/std/bare", true},
		{`NEST`, "/d/town/inn", true},
		{`MISSING`, "", false},
		{`LOOP2`, "", false},
		{``, "", false},
	}
	for _, tt := range tests {
		got, ok := Expand(tt.ref, macros)
		assert.Equal(t, tt.ok, ok, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}
}

func TestCandidates(t *testing.T) {
	root := filepath.FromSlash("/mud")
	from := filepath.FromSlash("/mud/d/town/square.c")
	j := filepath.FromSlash

	assert.Equal(t, []string{j("/mud/std/room.c"), j("/mud/std/room")},
		Candidates("/std/room", from, root, ".c"))
	assert.Equal(t, []string{
		j("/mud/d/town/inn.c"), j("/mud/d/town/inn"),
		j("/mud/inn.c"), j("/mud/inn"),
	}, Candidates("inn", from, root, ".c"))
	assert.Equal(t, []string{j("/mud/d/town/inn.c"), j("/mud/inn.c")},
		Candidates("inn.c", from, root, ".c"))
}
