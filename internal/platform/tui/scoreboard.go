package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxScores          = 100
	maxRuns            = 50
)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEmptyStyle  = boardDimStyle.Italic(true).Padding(2, 4)
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewScores boardView = iota
	viewRuns
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Runs     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Runs, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Runs, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	bind := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return ScoreboardKeyMap{
		Up:       bind("up/k", "scroll up", "up", "k"),
		Down:     bind("down/j", "scroll down", "down", "j"),
		Left:     bind("left/h", "prev game", "left", "h"),
		Right:    bind("right/l", "next game", "right", "l"),
		NextGame: bind("tab", "next game", "tab"),
		PrevGame: bind("S-tab", "prev game", "shift+tab"),
		Runs:     bind("v", "scores/runs", "v"),
		Back:     bind("esc/b", "back", "esc", "b"),
		Quit:     bind("q", "quit", "q", "ctrl+c"),
	}
}

// ScoreboardModel lists high scores and recorded headless runs per game.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	store     *storage.Store
	view      boardView
	scores    []storage.ScoreEntry
	runs      []storage.RunRecord
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.rebuild()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// columns lays out the table for the current view within the free width.
func (m ScoreboardModel) columns() []table.Column {
	free := m.width - 4
	if m.wide() {
		free -= sidebarWidth + 3
	}
	if m.view == viewRuns {
		return []table.Column{
			{Title: "Seed", Width: 12},
			{Title: "Ticks", Width: 8},
			{Title: "Score", Width: 8},
			{Title: "Hash", Width: 16},
			{Title: "Ended", Width: max(8, min(free-52, 24))},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: max(12, min(free-22, 20))},
	}
}

// rebuild recreates the table for the current size and view, then reloads it.
func (m *ScoreboardModel) rebuild() {
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
		table.WithStyles(st),
	)
	m.load()
}

// load fetches the selected game's rows. A failing store shows as empty.
func (m *ScoreboardModel) load() {
	m.scores, m.runs, m.stats = nil, nil, nil
	if id := m.gameID(); m.store != nil && id != "" {
		var err error
		switch m.view {
		case viewRuns:
			m.runs, err = m.store.RecentRuns(id, maxRuns)
		default:
			m.scores, err = m.store.TopScores(id, maxScores)
			if err == nil {
				m.stats, err = m.store.GetGameStats(id)
			}
		}
		if err != nil {
			m.scores, m.runs, m.stats = nil, nil, nil
		}
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m ScoreboardModel) rows() []table.Row {
	if m.view == viewRuns {
		rows := make([]table.Row, 0, len(m.runs))
		for _, r := range m.runs {
			ended := r.Reason
			if ended == "" {
				ended = "-"
			}
			rows = append(rows, table.Row{
				fmt.Sprint(r.Seed),
				fmt.Sprint(r.Ticks),
				fmt.Sprint(r.Score),
				fmt.Sprintf("%016x", r.Hash),
				ended,
			})
		}
		return rows
	}
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame, m.keys.Right):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame, m.keys.Left):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Runs):
			m.view = 1 - m.view
			m.rebuild()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the game selection, wrapping at both ends.
func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewRuns {
		heading = "RECENT RUNS"
	}
	if len(m.games) > 0 {
		heading += " - " + m.games[m.cursor].Title
	}

	body := boardFrameStyle.Render(m.content())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	} else {
		body = centerText(m.tabs(), m.width) + "\n\n" + centerText(body, m.width)
	}

	parts := []string{boardTitleStyle.Render(centerText(heading, m.width)), "", body}
	if line := m.statsLine(); line != "" {
		parts = append(parts, boardDimStyle.Render(line))
	}
	parts = append(parts, "", boardDimStyle.Render(m.help.View(m.keys)))
	return strings.Join(parts, "\n")
}

func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Games\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.games {
		b.WriteString("\n")
		line := "  " + truncate(g.Title, sidebarWidth-6)
		if i == m.cursor {
			line = boardTitleStyle.Render("> " + truncate(g.Title, sidebarWidth-6))
		}
		b.WriteString(line)
	}
	return boardFrameStyle.Width(sidebarWidth).Render(b.String())
}

// tabs renders the game strip for narrow terminals, collapsing to the
// current game when the strip does not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		if i == m.cursor {
			tabs[i] = boardActiveStyle.Render(name)
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.cursor].Title)
	}
	return line
}

func (m ScoreboardModel) content() string {
	switch {
	case m.view == viewRuns && len(m.runs) == 0:
		return boardEmptyStyle.Render("No runs recorded yet.\nRecord one with: arcade sim <game>")
	case m.view == viewScores && len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsLine() string {
	if m.view != viewScores || m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return centerText(fmt.Sprintf("%d games   best %d   average %.1f",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore), m.width)
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
