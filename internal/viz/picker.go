package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/drysim/internal/radial"
)

// PresetBuilder resolves a preset name to solver parameters.
type PresetBuilder func(name string) (radial.Params, error)

// Picker lists presets and hands the chosen one to a LiveModel.
type Picker struct {
	names   []string
	cursor  int
	build   PresetBuilder
	live    LiveModel
	started bool
	err     error
}

func NewPicker(names []string, build PresetBuilder) Picker {
	return Picker{names: names, build: build}
}

func (m Picker) Init() tea.Cmd { return nil }

// Live returns the session started from the menu, if any.
func (m Picker) Live() (LiveModel, bool) { return m.live, m.started }

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.started {
		next, cmd := m.live.Update(msg)
		m.live = next.(LiveModel)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.names) == 0 {
			return m, nil
		}
		name := m.names[m.cursor]
		p, err := m.build(name)
		if err != nil {
			m.err = err
			return m, nil
		}
		live, err := NewLiveModel(name, p)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.started, m.err = live, true, nil
		return m, m.live.Init()
	}
	return m, nil
}

func (m Picker) View() string {
	if m.started {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString(TitleStyle().Render("DRYSIM") + "  " + HelpStyle().Render("pick a preset") + "\n\n")
	for i, name := range m.names {
		line := fmt.Sprintf("  %s", name)
		if i == m.cursor {
			line = AccentStyle().Render("> " + name)
		}
		b.WriteString(line + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + ErrorStyle().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + HelpStyle().Render("↑↓:Move Enter:Start Q:Quit"))
	return PanelStyle().Render(b.String())
}
