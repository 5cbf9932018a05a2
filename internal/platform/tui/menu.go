package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

const menuTitle = "A S T R O   A R C A D E"

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 2)
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// menuChoice is what the player picked in the menu.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScores
	choiceQuit
)

// menuEntry is one line of the game picker.
type menuEntry struct {
	info registry.GameInfo
	best int // high score when the menu opened
}

// MenuModel is the game picker. It never ends the program on its own
// except for quit; the owner reads Choice after each update.
type MenuModel struct {
	entries []menuEntry
	cursor  int
	width   int
	keys    *KeyMapper
	choice  menuChoice
}

// NewMenuModel lists the registered games with their best scores. A nil
// store shows no scores.
func NewMenuModel(store *storage.Store, width int) MenuModel {
	var entries []menuEntry
	for _, info := range registry.List() {
		e := menuEntry{info: info}
		if store != nil {
			e.best, _ = store.HighScore(info.ID)
		}
		entries = append(entries, e)
	}
	return MenuModel{entries: entries, width: width, keys: NewKeyMapper()}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records choices.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(0, m.cursor-1)
		case MenuActionDown:
			m.cursor = max(0, min(len(m.entries)-1, m.cursor+1))
		case MenuActionSelect:
			if len(m.entries) > 0 {
				m.choice = choicePlay
			}
		case MenuActionScoreboard:
			m.choice = choiceScores
		case MenuActionQuit, MenuActionBack:
			m.choice = choiceQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

// Choice returns the pending choice and, for choicePlay, the game ID.
func (m MenuModel) Choice() (menuChoice, string) {
	if m.choice == choicePlay {
		return m.choice, m.entries[m.cursor].info.ID
	}
	return m.choice, ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render(menuTitle),
		"",
		"Select a game",
		"",
	}
	if len(m.entries) == 0 {
		lines = append(lines, menuBestStyle.Render("no games installed"))
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("  %-12s", e.info.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-12s", e.info.Title))
		}
		if e.best > 0 {
			line += menuBestStyle.Render(fmt.Sprintf("  best %d", e.best))
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", menuHelpStyle.Render("up/down: move   enter: play   tab: scores   q: quit"))

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n") + "\n"
}

// centerText pads text on the left so it sits centred in width columns.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
