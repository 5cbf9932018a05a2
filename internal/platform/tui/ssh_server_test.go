package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

func TestResolveHostKeyCreatesDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := resolveHostKey(want)
	if err != nil {
		t.Fatalf("resolveHostKey: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	info, err := os.Stat(filepath.Dir(want))
	if err != nil {
		t.Fatalf("key directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", filepath.Dir(want))
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewSessionModel(nil, cfg, "alice")
	if m.Username() != "alice" {
		t.Errorf("Username() = %q", m.Username())
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab did not open the scoreboard")
	}

	// Leaving the scoreboard must land back on the menu, not end the session
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil {
		t.Fatal("esc left the scoreboard open")
	}
	if m.quitting {
		t.Fatal("session quit when leaving the scoreboard")
	}

	m, cmd := updateSession(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Fatal("q in the menu did not end the session")
	}
	if m.View() != "" {
		t.Errorf("View after quit = %q, want empty", m.View())
	}
}

func TestSessionTracksWindowSize(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), "bob")
	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config size = %dx%d, want 120x40", m.config.ScreenW, m.config.ScreenH)
	}
}
