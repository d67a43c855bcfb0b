package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan Event)
	model := NewProgressModel("checking", []string{"a.c", "b.c"}, events)
	m, ok := model.(*progressModel)
	require.True(t, ok)

	m.Update(eventMsg(Event{File: "a.c", Status: StatusWorking}))
	m.Update(eventMsg(Event{File: "b.c", Status: StatusError, Errors: 2, Warnings: 1}))
	m.Update(eventMsg(Event{File: "unknown.c", Status: StatusDone}))

	view := m.View()
	assert.Contains(t, view, "checking (1/2)")
	assert.Contains(t, view, "analyzing")
	assert.Contains(t, view, "2E 1W")

	_, cmd := m.Update(doneMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, strings.Contains(m.View(), "done: checking"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short.c", truncate("short.c", 20))
	assert.Equal(t, "very/lo...", truncate("very/long/path/room.c", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "queued", StatusQueued.String())
	assert.Equal(t, "done", StatusDone.String())
}
