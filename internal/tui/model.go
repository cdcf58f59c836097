// Package tui is the interactive terminal display: favorites row, record
// indicator, transcript area, language menu and help panel.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chaz8081/dictaria/internal/config"
	"github.com/chaz8081/dictaria/internal/lang"
)

// MsgListening is the status shown while recording.
const MsgListening = "[Listening / Escuchando...]"

const maxLines = 500

// Options configures a Model.
type Options struct {
	// Toggle starts or stops a recording. It is called off the event loop.
	Toggle func()
	// OnReady runs once, off the event loop, after the program has started
	// handling messages. Producers that Send into the program start here.
	OnReady   func()
	Languages *lang.Selection
	Prefs     config.Prefs
	PrefsPath string // empty disables saving
	Hotkey    string // e.g. "cmd+shift+j", empty when no global hotkey is active
	Backend   string
}

type line struct {
	text   string
	notice bool
}

// Model is the bubbletea model.
type Model struct {
	opts Options

	theme     Theme
	showHelp  bool
	recording bool
	lines     []line

	menu   bool
	query  string
	cursor int

	width, height int
}

// New returns a Model initialised from opts.Prefs.
func New(opts Options) Model {
	return Model{
		opts:     opts,
		theme:    themeFor(opts.Prefs.Theme),
		showHelp: opts.Prefs.ShowHelp,
	}
}

// readyMsg is the first message the event loop handles.
type readyMsg struct{}

func (m Model) Init() tea.Cmd {
	if m.opts.OnReady == nil {
		return nil
	}
	return func() tea.Msg { return readyMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case textMsg:
		m.push(line{text: msg.Text})

	case noticeMsg:
		m.push(line{text: msg.Text, notice: true})

	case stateMsg:
		m.recording = msg.Recording

	case readyMsg:
		ready := m.opts.OnReady
		return m, func() tea.Msg {
			ready()
			return nil
		}

	case tea.KeyMsg:
		if m.menu {
			return m.updateMenu(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := msg.String(); k {
	case "ctrl+c", "q":
		return m, tea.Quit

	case " ", "space", "enter":
		return m, m.toggleCmd()

	case "1", "2", "3", "4", "5":
		favs := m.opts.Languages.Favorites()
		i := int(k[0] - '1')
		if i < len(favs) {
			m.setActive(favs[i])
			m.savePrefs()
		}

	case "l":
		m.menu = true
		m.query = ""
		m.cursor = 0

	case "?":
		m.showHelp = !m.showHelp
		m.savePrefs()

	case "t":
		if m.theme.Name == "dark" {
			m.theme = lightTheme()
		} else {
			m.theme = darkTheme()
		}
		m.savePrefs()
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := lang.Search(m.query)

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.menu = false

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "ctrl+n":
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case " ", "space":
		if m.cursor < len(items) {
			if err := m.opts.Languages.Toggle(items[m.cursor].Code); err != nil {
				m.reportLanguageError(err)
			}
			m.savePrefs()
		}

	case "enter":
		if m.cursor < len(items) {
			if m.setActive(items[m.cursor].Code) {
				m.menu = false
			}
			m.savePrefs()
		}

	case "backspace":
		if m.query != "" {
			r := []rune(m.query)
			m.query = string(r[:len(r)-1])
			m.cursor = 0
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.cursor = 0
		}
	}
	return m, nil
}

// toggleCmd runs Toggle off the event loop; the controller reports the
// resulting state back through Display.
func (m Model) toggleCmd() tea.Cmd {
	toggle := m.opts.Toggle
	return func() tea.Msg {
		toggle()
		return nil
	}
}

func (m *Model) setActive(code string) bool {
	if err := m.opts.Languages.SetActive(code); err != nil {
		m.reportLanguageError(err)
		return false
	}
	return true
}

func (m *Model) reportLanguageError(err error) {
	if errors.Is(err, lang.ErrFavoritesFull) {
		m.push(line{text: lang.MsgFavoritesFull, notice: true})
		return
	}
	slog.Warn("[tui] language change rejected", "error", err)
}

func (m *Model) push(l line) {
	m.lines = append(m.lines, l)
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}
}

func (m Model) prefs() config.Prefs {
	return config.Prefs{
		Theme:          m.theme.Name,
		Favorites:      m.opts.Languages.Favorites(),
		ActiveLanguage: m.opts.Languages.Active(),
		ShowHelp:       m.showHelp,
	}
}

func (m Model) savePrefs() {
	if m.opts.PrefsPath == "" {
		return
	}
	if err := config.SavePrefs(m.opts.PrefsPath, m.prefs()); err != nil {
		slog.Warn("[tui] could not save preferences", "error", err)
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	t := m.theme

	header := []string{
		t.Title.Render("dictaria") + t.Help.Render("  "+m.opts.Backend),
		m.favoritesRow(),
		m.indicator(),
		"",
	}

	var footer []string
	if m.showHelp {
		footer = append([]string{""}, m.helpLines()...)
	}

	bodyHeight := max(m.height-len(header)-len(footer), 1)

	var body []string
	if m.menu {
		body = m.menuLines(bodyHeight)
	} else {
		body = m.transcriptLines(bodyHeight)
	}
	for len(body) < bodyHeight {
		body = append(body, "")
	}

	all := append(header, body...)
	all = append(all, footer...)
	return strings.Join(all, "\n")
}

func (m Model) favoritesRow() string {
	t := m.theme
	favs := m.opts.Languages.Favorites()
	if len(favs) == 0 {
		return t.Help.Render("No favorite languages yet, press l to choose")
	}

	active := m.opts.Languages.Active()
	parts := make([]string, 0, len(favs))
	for i, code := range favs {
		l, _ := lang.Lookup(code)
		label := fmt.Sprintf(" %d %s %s ", i+1, l.Flag, code)
		if code == active {
			parts = append(parts, t.Active.Render(label))
		} else {
			parts = append(parts, t.Favorite.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) indicator() string {
	t := m.theme
	switch {
	case m.opts.Languages.Active() == "":
		return t.RecOff.Render("● REC") + t.Help.Render("  choose a language first")
	case m.recording:
		return t.RecActive.Render("■ " + MsgListening)
	default:
		hint := "  space to record"
		if m.opts.Hotkey != "" {
			hint += " or " + m.opts.Hotkey
		}
		return t.RecIdle.Render("● REC") + t.Help.Render(hint)
	}
}

// transcriptLines renders the newest lines that fit in height rows.
func (m Model) transcriptLines(height int) []string {
	t := m.theme
	if len(m.lines) == 0 {
		return []string{t.Help.Render("Transcripts will appear here")}
	}

	var rows []string
	for i := len(m.lines) - 1; i >= 0 && len(rows) < height; i-- {
		style := t.Text
		if m.lines[i].notice {
			style = t.Notice
		}
		wrapped := strings.Split(style.Width(m.width).Render(m.lines[i].text), "\n")
		rows = append(wrapped, rows...)
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return rows
}

func (m Model) menuLines(height int) []string {
	t := m.theme
	items := lang.Search(m.query)

	rows := []string{t.Title.Render("Languages") + t.Help.Render("  search: "+m.query)}
	if len(items) == 0 {
		return append(rows, t.Help.Render("no match"))
	}

	visible := max(height-1, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(items))

	for i := start; i < end; i++ {
		l := items[i]
		star := " "
		if m.opts.Languages.IsFavorite(l.Code) {
			star = "★"
		}
		label := fmt.Sprintf("%s %s %s  %s", star, l.Flag, l.Code, l.Name)
		if i == m.cursor {
			rows = append(rows, t.MenuCursor.Render("> "+label))
		} else {
			rows = append(rows, t.MenuItem.Render("  "+label))
		}
	}
	return rows
}

func (m Model) helpLines() []string {
	t := m.theme
	key := func(k, desc string) string {
		return t.HelpKey.Render(k) + t.Help.Render(" "+desc)
	}
	if m.menu {
		return []string{
			key("↑/↓", "move") + "   " + key("space", "favorite") + "   " + key("enter", "use") + "   " + key("esc", "close"),
			t.Help.Render("type to search"),
		}
	}
	return []string{
		key("space/enter", "record") + "   " + key("1-5", "language") + "   " + key("l", "languages"),
		key("t", "theme") + "   " + key("?", "help") + "   " + key("q", "quit"),
	}
}
