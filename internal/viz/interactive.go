package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/projshift/internal/config"
)

var presetInfo = map[string]string{
	"default":          "60° / size 5, 1s from orthographic",
	"wide":             "90° field of view, size 8",
	"telephoto":        "20° field of view, size 3",
	"slow":             "4s transition",
	"instant":          "zero duration, snaps immediately",
	"from_perspective": "starts in perspective",
	"jittery":          "uneven frame times",
}

const (
	stateMenu = iota
	stateLive
)

// Menu lists the configuration presets and opens the viewer on the chosen
// one. Esc in the viewer returns to the list.
type Menu struct {
	state   int
	cursor  int
	presets []string
	live    Model
	opened  int
	err     error
}

func NewMenu() Menu {
	return Menu{presets: config.ListPresets()}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		name := m.presets[m.cursor]
		live, err := NewModel(config.GetPreset(name), name)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.opened++
		live.gen = m.opened
		m.live = live
		m.state = stateLive
		return m, live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.state == stateLive {
		return m.live.View() + "\n" + KeyHint.Render("esc: back to presets")
	}

	var s strings.Builder
	s.WriteString(Title.Render("PROJSHIFT") + "  " + Subtle.Render("projection transitions") + "\n\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-18s %s", name, Subtle.Render(presetInfo[name]))
		if i == m.cursor {
			s.WriteString(Selected.Render("> "+name) + strings.Repeat(" ", max(0, 17-len(name))) + " " + Subtle.Render(presetInfo[name]) + "\n")
			continue
		}
		s.WriteString("  " + line + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + StatusIdle.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("↑/↓ select  enter open  q quit"))
	return Panel.Render(s.String())
}

// RunInteractive shows the preset menu full screen.
func RunInteractive() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen()).Run()
	return err
}
