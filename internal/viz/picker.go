package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LaunchFunc builds the live view for a chosen preset.
type LaunchFunc func(preset string) (Model, error)

// Picker lists presets and hands over to the live view once one is chosen.
type Picker struct {
	presets []string
	info    map[string]string
	cursor  int
	launch  LaunchFunc
	live    *Model
	err     error
}

func NewPicker(presets []string, info map[string]string, launch LaunchFunc) Picker {
	return Picker{presets: presets, info: info, launch: launch}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.presets) == 0 {
			return p, nil
		}
		live, err := p.launch(p.presets[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.err = nil
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

// Selected is the preset under the cursor.
func (p Picker) Selected() string {
	if len(p.presets) == 0 {
		return ""
	}
	return p.presets[p.cursor]
}

func (p Picker) Launched() bool { return p.live != nil }

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var s strings.Builder
	s.WriteString(Title.Render("liquid presets") + "\n\n")
	for i, name := range p.presets {
		line := fmt.Sprintf("%-12s %s", name, Subtle.Render(p.info[name]))
		if i == p.cursor {
			s.WriteString(StatusRunning.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + StatusPaused.Render(p.err.Error()) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("↑/↓ select  enter run  q quit"))
	return Panel.Render(s.String())
}
