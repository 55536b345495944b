package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/experiment"
	"github.com/san-kum/cartbob/internal/sim"
)

var presetInfo = map[string]string{
	"rest":   "bob hanging still",
	"swing":  "released level with the cart",
	"shove":  "scripted push and counter-push",
	"centre": "pid steers the cart home",
	"square": "swing in a square window",
	"wide":   "swing in a wide window",
}

const (
	stateMenu = iota
	stateSim
)

type model struct {
	state, cursor int
	presets       []string
	selected      string
	registry      *experiment.Registry
	width, height int
	liveModel     Model
	err           error
}

func NewInteractiveApp() *model {
	return &model{
		state:    stateMenu,
		presets:  config.ListPresets(),
		registry: experiment.NewRegistry(),
		width:    width,
		height:   height,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateSim {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m model) forward(msg tea.Msg) (model, tea.Cmd) {
	newLive, cmd := m.liveModel.Update(msg)
	m.liveModel = newLive.(Model)
	m.err = m.liveModel.Err()
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		if msg.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		return m.forward(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
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
		m.selected = m.presets[m.cursor]
		cmd, err := m.start()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

// start launches the selected preset. Presets without a driver of their
// own are played from the keyboard.
func (m *model) start() (tea.Cmd, error) {
	cfg := config.GetPreset(m.selected)
	var driver sim.Driver
	if cfg.Run.Driver != "none" {
		d, err := m.registry.GetDriver(cfg)
		if err != nil {
			return nil, err
		}
		driver = d
	}

	m.liveModel = NewModel(cfg.NewSimulation(), driver, cfg.Run.Dt, m.selected)
	m.liveModel.resize(m.width-statsWidth-4, m.height-2)
	m.state = stateSim
	return m.liveModel.Init(), nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	accent := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	b.WriteString("\n\n    " + GradientText("CARTBOB", CurrentTheme.Primary, CurrentTheme.Secondary) +
		"\n    " + Subtle.Render("a pendulum on a cart you can push") +
		"\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", accent.Render("▸"), lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-10s", name)), NeonGlow.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", Subtle.Render(fmt.Sprintf("  %-10s", name)), Subtle.Render(desc)))
		}
	}
	b.WriteString("\n    " + accent.Render("j/k") + Subtle.Render(" navigate  ") +
		accent.Render("enter") + Subtle.Render(" select  ") +
		accent.Render("esc") + Subtle.Render(" back  ") +
		accent.Render("q") + Subtle.Render(" quit") + "\n")
	return GlassPanel.Render(b.String())
}

// RunInteractive shows the preset menu and hosts the chosen preset.
func RunInteractive() error {
	final, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	switch m := final.(type) {
	case model:
		return m.err
	case *model:
		return m.err
	}
	return nil
}

// Run hosts a single simulation until the user quits. A step error ends
// the session and is returned.
func Run(s *sim.Simulation, driver sim.Driver, dt float64, title string) error {
	final, err := tea.NewProgram(NewModel(s, driver, dt, title), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
