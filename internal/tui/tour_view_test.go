package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const sampleTour = "# Getting started\n\nStart the core network first.\n\n- Log into `cn5g-docker-host`\n\n```\nsudo systemctl start oai-cn5g-and-a-rather-long-unit-name-that-will-not-fit\n```\n"

func TestRenderMarkdown(t *testing.T) {
	out := ansi.Strip(renderMarkdown(sampleTour, 30))

	if strings.Contains(out, "#") {
		t.Errorf("heading markers should be stripped:\n%s", out)
	}
	if strings.Contains(out, "```") {
		t.Errorf("code fences should be stripped:\n%s", out)
	}
	if !strings.Contains(out, "• Log into") {
		t.Errorf("expected bullet rendering:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("line exceeds width (%d): %q", w, line)
		}
	}
}

func TestTourModel_ResizeAndQuit(t *testing.T) {
	var m tea.Model = newTourModel("bench_a", sampleTour)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "oaiprofile") || !strings.Contains(view, "Getting started") {
		t.Errorf("unexpected view:\n%s", view)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestTourModel_EmptyBeforeSize(t *testing.T) {
	if got := newTourModel("", sampleTour).View(); got != "" {
		t.Errorf("expected empty view before first resize, got %q", got)
	}
}
