package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"powderteam/oaiprofile/internal/config"
	"powderteam/oaiprofile/internal/tui/components"
	"powderteam/oaiprofile/internal/tui/styles"
)

type configSavedMsg struct{}

type configSaveErrorMsg struct {
	err error
}

// defaultField is one persisted default and the choice the user is pointing at.
type defaultField struct {
	spec    *config.KeySpec
	choices []config.Choice
	index   int
	saved   int
}

func newDefaultField(spec *config.KeySpec, current string) defaultField {
	f := defaultField{spec: spec, choices: spec.Choices()}
	f.index = -1
	for i, c := range f.choices {
		if c.Value == current {
			f.index = i
			break
		}
	}
	if f.index < 0 {
		// A hand-edited file can hold a value the profile no longer offers.
		f.choices = append(f.choices, config.Choice{Value: current, Label: "not a legal value"})
		f.index = len(f.choices) - 1
	}
	f.saved = f.index
	return f
}

func (f defaultField) selected() config.Choice { return f.choices[f.index] }

func (f defaultField) dirty() bool { return f.index != f.saved }

func (f *defaultField) step(delta int) {
	n := len(f.choices)
	f.index = ((f.index+delta)%n + n) % n
}

type configViewModel struct {
	cfg    *config.Config
	fields []defaultField
	cursor int

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView opens the editor for the persisted render defaults.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p := tea.NewProgram(newConfigViewModel(cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newConfigViewModel(cfg *config.Config) configViewModel {
	fields := make([]defaultField, len(config.Keys))
	for i := range config.Keys {
		spec := &config.Keys[i]
		fields[i] = newDefaultField(spec, spec.Get(cfg))
	}
	return configViewModel{cfg: cfg, fields: fields}
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case configSavedMsg:
		for i := range m.fields {
			m.fields[i].saved = m.fields[i].index
		}
		m.status = "Defaults saved"
		m.isError = false
		return m, nil

	case configSaveErrorMsg:
		m.status = "Error: " + msg.err.Error()
		m.isError = true
		return m, nil
	}

	return m, nil
}

func (m configViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, tea.Quit
	}
	field := &m.fields[m.cursor]

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "right", "l", " ":
		field.step(1)
		m.status = ""
	case "left", "h":
		field.step(-1)
		m.status = ""
	case "u":
		field.index = 0
		m.status = ""
	case "enter", "s":
		return m.apply()
	}

	return m, nil
}

// apply validates every modified field, copies the choices into the config
// and saves it. Nothing is written when a choice is rejected.
func (m configViewModel) apply() (tea.Model, tea.Cmd) {
	changed := 0
	for _, f := range m.fields {
		if !f.dirty() {
			continue
		}
		if err := f.spec.Validate(f.selected().Value); err != nil {
			m.status = fmt.Sprintf("Invalid value for %s: %v", f.spec.Name, err)
			m.isError = true
			return m, nil
		}
		changed++
	}
	if changed == 0 {
		m.status = "No changes"
		m.isError = false
		return m, nil
	}

	for _, f := range m.fields {
		if f.dirty() {
			f.spec.Set(m.cfg, f.selected().Value)
		}
	}
	return m, m.saveConfig()
}

func (m configViewModel) saveConfig() tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return configSaveErrorMsg{err: err}
		}
		return configSavedMsg{}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "defaults", "")
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "h/l", Desc: "change"},
		{Key: "u", Desc: "unset"},
		{Key: "enter", Desc: "save"},
		{Key: "q", Desc: "quit"},
	})

	statusBar := ""
	if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.isError)
	}

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	sections := []string{header, m.renderFields(contentH)}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m configViewModel) renderFields(height int) string {
	const labelWidth = 16

	rows := make([]string, 0, len(m.fields)+1)
	for i, f := range m.fields {
		choice := f.selected()
		value := choice.Value
		if value == "" {
			value = "-"
		}
		if choice.Label != "" && choice.Label != choice.Value {
			value += "  " + choice.Label
		}
		marker := " "
		if f.dirty() {
			marker = "*"
		}

		if i != m.cursor {
			rows = append(rows, "  "+styles.MutedText.Width(labelWidth).Render(f.spec.Name)+
				styles.MutedText.Render(marker+" "+value))
			continue
		}
		rows = append(rows,
			styles.AccentText.Render("> ")+
				styles.Label.Width(labelWidth).Render(f.spec.Name)+
				styles.AccentText.Render(marker+"‹ ")+
				styles.Value.Bold(true).Render(value)+
				styles.AccentText.Render(" ›"),
			strings.Repeat(" ", 4)+styles.MutedText.Italic(true).Render(f.spec.Description),
		)
	}

	card := styles.Card.Width(64).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, styles.Title.Render("Render defaults"), "", card)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, combined)
}
