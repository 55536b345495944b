package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/vec"
)

func newTestModel() Model {
	s := sim.NewSimulation(dynamo.NewState(), dynamo.DefaultParams(), sim.DefaultHostParams())
	s.State.Bob.Position = vec.New(0.5, 0.25)
	return NewModel(s, nil, 1.0/120, "test")
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Fatal("expected pixel to be set")
	}
	if c.IsSet(2, 5) {
		t.Error("neighbour should be clear")
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) {
		t.Error("expected pixel to be cleared")
	}

	c.FillCircle(4, 4, 1)
	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBase && r != '\n' }) {
		t.Error("expected an empty canvas after clear")
	}
}

func TestCanvasOutOfRangeIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(100, 100)
	c.DrawLine(-5, -5, 50, 50)
	if c.IsSet(100, 100) {
		t.Error("out of range pixels are never set")
	}
}

func TestModelPausedTickDoesNothing(t *testing.T) {
	m := newTestModel()
	before := m.Snapshot()

	m = tick(m, 10)
	if before != m.Snapshot() {
		t.Errorf("paused ticks changed the state: %+v -> %+v", before, m.Snapshot())
	}
}

func TestModelKeyPushesCart(t *testing.T) {
	m := newTestModel()
	m.sim.Toggle()

	next, _ := m.Update(key('d'))
	m = tick(next.(Model), 5)

	if m.sim.Cart().Position.X <= 0.5 {
		t.Errorf("cart should move right, got x=%f", m.sim.Cart().Position.X)
	}
	if !m.lastIn.Right {
		t.Error("right should still be held")
	}

	m = tick(m, holdFrames)
	if !m.lastIn.Idle() {
		t.Errorf("key should be released after %d frames, got %+v", holdFrames, m.lastIn)
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel()
	m.sim.Toggle()
	m = tick(m, 30)

	next, _ := m.Update(key('r'))
	m = next.(Model)
	if m.sim.Running() || m.sim.State.Time != 0 {
		t.Errorf("reset should restore the paused initial state, got t=%f", m.sim.State.Time)
	}
	if len(m.angleHistory) != 0 {
		t.Error("reset should clear the history")
	}
}

func TestModelStepErrorQuits(t *testing.T) {
	m := newTestModel()
	m.sim.State.Bob.Mass = 0
	m.sim.Toggle()

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Err() == nil {
		t.Fatal("expected a step error")
	}
	if !errors.Is(m.Err(), vec.ErrDivisionByZero) {
		t.Errorf("expected division error, got %v", m.Err())
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelViewShowsStatus(t *testing.T) {
	m := newTestModel()
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status")
	}
	m.sim.Toggle()
	m = tick(m, 2)
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("expected running status")
	}
}

func TestResizeSetsAspect(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 150, Height: 42})
	m = next.(Model)

	// 100x40 cells of 8x16 pixels
	if got := m.sim.State.Aspect; got != 800.0/640.0 {
		t.Errorf("expected aspect 1.25, got %f", got)
	}
}

func TestCycleTheme(t *testing.T) {
	start := CurrentTheme.Name
	for range Themes {
		CycleTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("cycling through all themes should return to %s, got %s", start, CurrentTheme.Name)
	}
}

func TestDrawScene(t *testing.T) {
	c := NewCanvas(40, 20)
	cart := dynamo.NewBody(vec.New(0.5, 0.5))
	cart.Dimensions = vec.New(0.1, 0.1)
	bob := dynamo.NewBody(vec.New(0.75, 0.5))
	bob.Radius = dynamo.DefaultBobRadius

	c.DrawScene(cart, bob)

	cx, cy := c.Project(0.5, 0.5)
	bx, by := c.Project(0.75, 0.5)
	if !c.IsSet(bx, by) {
		t.Error("bob centre not drawn")
	}
	if !c.IsSet((cx+bx)/2, (cy+by)/2) {
		t.Error("rod not drawn")
	}
	if !c.IsSet(0, cy+4+1) {
		t.Error("ground line not drawn at the left edge")
	}
	if c.IsSet(cx, 0) {
		t.Error("nothing should be drawn at the top of the canvas")
	}
}

func TestCanvasProject(t *testing.T) {
	c := NewCanvas(10, 5)
	if x, y := c.Project(0, 0); x != 0 || y != 19 {
		t.Errorf("bottom left = (%d, %d), want (0, 19)", x, y)
	}
	if x, y := c.Project(1, 1); x != 19 || y != 0 {
		t.Errorf("top right = (%d, %d), want (19, 0)", x, y)
	}
}
