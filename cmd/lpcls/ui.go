package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lpcls/internal/diagfmt"
	"lpcls/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "off":
		return uiModeOff, nil
	case "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeAuto:
		return isTerminal(os.Stdout)
	default:
		return false
	}
}

type checkOutcome struct {
	docs []diagfmt.Document
	err  error
}

// checkFilesWithUI runs checkFiles while a progress view follows its events.
func (s *session) checkFilesWithUI(ctx context.Context, files []string, opts checkOptions) ([]diagfmt.Document, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		docs, err := s.checkFiles(ctx, files, opts, func(ev ui.Event) { events <- ev })
		outcomeCh <- checkOutcome{docs: docs, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the workers from blocking on a view that is gone
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.docs, uiErr
	}
	return outcome.docs, outcome.err
}
