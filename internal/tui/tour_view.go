package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"powderteam/oaiprofile/internal/tui/components"
	"powderteam/oaiprofile/internal/tui/styles"
)

type tourModel struct {
	title    string
	markdown string

	width  int
	height int

	viewport viewport.Model
	quitting bool
}

// RunTourViewer shows markdown in a full-window scrollable view until the
// user quits.
func RunTourViewer(title, markdown string) error {
	m := newTourModel(title, markdown)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run tour viewer: %w", err)
	}
	return nil
}

func newTourModel(title, markdown string) tourModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = tourViewportKeyMap()
	return tourModel{title: title, markdown: markdown, viewport: vp}
}

func tourViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithDisabled(),
		),
		Right: key.NewBinding(
			key.WithDisabled(),
		),
	}
}

func (m tourModel) Init() tea.Cmd { return nil }

func (m tourModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer()) + 1
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.viewport.SetContent(renderMarkdown(m.markdown, max(msg.Width-4, 20)))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tourModel) header() string {
	return components.Header(m.width, "tour", m.title)
}

func (m tourModel) footer() string {
	return components.Footer(m.width, []components.KeyBinding{
		{Key: "j/k", Desc: "scroll"},
		{Key: "g/G", Desc: "top/bottom"},
		{Key: "q", Desc: "quit"},
	})
}

func (m tourModel) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}

	status := components.StatusBar(m.width,
		fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100), false)

	content := lipgloss.NewStyle().Padding(0, 2).Render(m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), content, status, m.footer())
}

// renderMarkdown styles a markdown document for the terminal: headings
// bold, bullets accented, paragraphs wrapped to width and code blocks
// truncated to width.
func renderMarkdown(md string, width int) string {
	var out []string
	inCode := false
	wrap := lipgloss.NewStyle().Width(width)

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, styles.AccentText.Render(ansi.Truncate(line, width, "…")))
			continue
		}

		switch {
		case trimmed == "":
			out = append(out, "")
		case strings.HasPrefix(trimmed, "#"):
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			out = append(out, styles.Title.Foreground(styles.Blue).Render(heading))
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			bullet := styles.AccentText.Render("•") + " "
			body := lipgloss.NewStyle().Width(max(width-2, 1)).Render(trimmed[2:])
			lines := strings.Split(body, "\n")
			for i, l := range lines {
				if i == 0 {
					out = append(out, bullet+l)
					continue
				}
				out = append(out, "  "+l)
			}
		default:
			out = append(out, wrap.Render(trimmed))
		}
	}
	return strings.Join(out, "\n")
}
