package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cartbob/internal/control"
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/physics"
	"github.com/san-kum/cartbob/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 46
	historyCapacity = 600
	trailCapacity   = 120

	// terminal cells are roughly 8x16 pixels; the simulation is sized as if
	// the canvas were a window of that many pixels
	charW = 8
	charH = 16

	// a terminal reports key presses, not releases, so a press holds its
	// key for this many frames and auto-repeat keeps it held
	holdFrames = 12

	gifPath = "cartbob.gif"
)

type TickMsg time.Time

type point struct{ x, y int }

// Model hosts one Simulation in the terminal. Keys drive it through a
// control.Keyboard unless another driver is supplied.
type Model struct {
	sim      *sim.Simulation
	keyboard *control.Keyboard
	driver   sim.Driver
	title    string
	dt       float64

	width, height int
	canvas        *Canvas
	trail         []point

	held     sim.Input
	holdLeft int
	lastIn   sim.Input

	angleHistory   []float64
	kineticHistory []float64

	lastFrame time.Time
	fps       float64

	recording bool
	frames    []*image.Paletted
	showHelp  bool
	err       error
}

// NewModel builds a terminal host. A nil driver means keyboard control.
func NewModel(s *sim.Simulation, driver sim.Driver, dt float64, title string) Model {
	kb := control.NewKeyboard()
	if driver == nil {
		driver = kb
	}
	m := Model{
		sim:            s,
		keyboard:       kb,
		driver:         driver,
		title:          title,
		dt:             dt,
		trail:          make([]point, 0, trailCapacity),
		angleHistory:   make([]float64, 0, historyCapacity),
		kineticHistory: make([]float64, 0, historyCapacity),
	}
	m.resize(width, height)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Err is the step error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Simulation() *sim.Simulation {
	return m.sim
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sim.Toggle()
		case "a", "left":
			m.press(sim.Input{Left: true})
		case "A", "shift+left":
			m.press(sim.Input{Left: true, Boost: true})
		case "d", "right":
			m.press(sim.Input{Right: true})
		case "D", "shift+right":
			m.press(sim.Input{Right: true, Boost: true})
		case "r":
			m.reset()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			CycleTheme()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-4, msg.Height-2)
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if elapsed := now.Sub(m.lastFrame).Seconds(); elapsed > 0 {
				m.fps = 0.9*m.fps + 0.1/elapsed
			}
		}
		m.lastFrame = now

		if err := m.step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) press(in sim.Input) {
	m.held = in
	m.holdLeft = holdFrames
}

// step samples the driver and advances one frame. Paused frames leave the
// simulation untouched.
func (m *Model) step() error {
	if m.holdLeft > 0 {
		m.keyboard.Set(m.held)
		m.holdLeft--
	} else {
		m.keyboard.Release()
	}

	if !m.sim.Running() {
		m.lastIn = sim.Input{}
		return nil
	}

	in := m.driver.Next(m.sim.State)
	m.lastIn = in
	if err := m.sim.Frame(in, m.dt); err != nil {
		return err
	}

	bob := m.sim.Bob()
	m.angleHistory = appendCapped(m.angleHistory, bob.Angle*180/math.Pi, historyCapacity)
	m.kineticHistory = appendCapped(m.kineticHistory, 0.5*bob.Mass*bob.Velocity.LenSq(), historyCapacity)
	return nil
}

func appendCapped(xs []float64, v float64, capacity int) []float64 {
	xs = append(xs, v)
	if len(xs) > capacity {
		xs = xs[1:]
	}
	return xs
}

// reset restores the initial state, paused.
func (m *Model) reset() {
	m.sim.Reset()
	m.trail = m.trail[:0]
	m.angleHistory = m.angleHistory[:0]
	m.kineticHistory = m.kineticHistory[:0]
	m.holdLeft = 0
	m.keyboard.Release()
	if r, ok := m.driver.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// resize fits the canvas to cols x rows cells and tells the simulation the
// matching window size, so the aspect ratio on screen is the one the
// physics uses.
func (m *Model) resize(cols, rows int) {
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	m.width, m.height = cols, rows
	m.canvas = NewCanvas(cols, rows)
	m.trail = m.trail[:0]
	m.sim.Resize(cols*charW, rows*charH)
}

func (m *Model) draw() {
	m.canvas.Clear()

	bob := m.sim.Bob()
	if m.sim.Running() {
		bx, by := m.canvas.Project(bob.Position.X, bob.Position.Y)
		m.trail = append(m.trail, point{bx, by})
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
	for i, p := range m.trail {
		if i%2 == 0 {
			m.canvas.Set(p.x, p.y)
		}
	}

	m.canvas.DrawScene(m.sim.Cart(), bob)
}

// View renders the TUI interface.
func (m Model) View() string {
	th := CurrentTheme
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.title), th.Primary, th.Secondary) + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.sim.Running() {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	if len(m.angleHistory) > 1 {
		chart := asciigraph.Plot(m.angleHistory,
			asciigraph.Height(6),
			asciigraph.Width(statsWidth-12),
			asciigraph.Caption("angle (deg)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	cart, bob := m.sim.Cart(), m.sim.Bob()
	scale := physics.AspectScale(m.sim.State.Aspect)
	rod := physics.Distance(bob.Position, cart.Position, scale)

	s.WriteString(metric("Time", fmt.Sprintf("%.2fs", m.sim.State.Time)))
	s.WriteString(metric("FPS", fmt.Sprintf("%.0f", m.fps)))
	s.WriteString(metric("Angle", fmt.Sprintf("%.1f°", bob.Angle*180/math.Pi)))
	s.WriteString(metric("Omega", fmt.Sprintf("%.3f rad/s", bob.AngularVelocity)))
	s.WriteString(metric("Cart pos", vecString(cart.Position.X, cart.Position.Y)))
	s.WriteString(metric("Cart vel", vecString(cart.Velocity.X, cart.Velocity.Y)))
	s.WriteString(metric("Bob pos", vecString(bob.Position.X, bob.Position.Y)))
	s.WriteString(metric("Bob vel", vecString(bob.Velocity.X, bob.Velocity.Y)))
	s.WriteString(metric("Rod", fmt.Sprintf("%.4f / %.4f", rod, m.sim.Params.RestLength)))
	s.WriteString(metric("Keys", heldKeys(m.lastIn)))
	s.WriteString(MetricLabel.Render("KE ") + SparklineChart(m.kineticHistory, statsWidth-8) + "\n")

	s.WriteString("\n" + Separator(statsWidth-6) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause A/D:Move ⇧:Boost R:Reset\nT:Theme(" + th.Name + ") G:Record ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  A / ←    - Push the cart left       ║
║  D / →    - Push the cart right      ║
║  Shift    - Boost (with A or D)      ║
║  R        - Reset simulation         ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func metric(label, value string) string {
	return labelStyle.Render(label) + MetricValue.Render(value) + "\n"
}

func vecString(x, y float64) string {
	return fmt.Sprintf("(%.3f, %.3f)", x, y)
}

func heldKeys(in sim.Input) string {
	var k []string
	if in.Left {
		k = append(k, "A")
	}
	if in.Right {
		k = append(k, "D")
	}
	if in.Boost {
		k = append(k, "SHIFT")
	}
	if len(k) == 0 {
		return "-"
	}
	return strings.Join(k, "+")
}

func (m *Model) captureFrame() {
	imgW, imgH := m.width*charW, m.height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			pattern := int(m.canvas.Grid[row][col] - brailleBase)
			if pattern <= 0 {
				continue
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(gifPath)
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}

// Snapshot is the state the model currently shows.
func (m Model) Snapshot() dynamo.Snapshot {
	return m.sim.State.Snapshot()
}
