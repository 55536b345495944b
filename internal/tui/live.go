package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

const (
	width       = 70
	height      = 20
	trailLen    = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws headless runs as plain ASCII. It implements
// sim.Observer and drops frames that arrive faster than frameRate; a
// frameRate of zero draws every frame.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, trailLen),
	}
}

func (r *LiveRenderer) OnFrame(s *dynamo.SimulationState, in sim.Input) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.clear()
	r.draw(s)
	r.render(s, in)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// project maps normalized window coordinates onto the character grid with
// y pointing down.
func project(x, y float64) (int, int) {
	return int(math.Round(x * float64(width-1))), int(math.Round((1 - y) * float64(height-1)))
}

func (r *LiveRenderer) draw(s *dynamo.SimulationState) {
	cx, cy := project(s.Cart.Position.X, s.Cart.Position.Y)
	bx, by := project(s.Bob.Position.X, s.Bob.Position.Y)

	for i := 0; i < width; i++ {
		r.set(i, cy+1, '=')
	}

	r.trail = append(r.trail, struct{ x, y int }{bx, by})
	if len(r.trail) > trailLen {
		r.trail = r.trail[1:]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	halfW := int(math.Round(s.Cart.Dimensions.X * float64(width-1) / 2))
	for dx := -halfW; dx <= halfW; dx++ {
		r.set(cx+dx, cy, '#')
	}

	r.line(cx, cy, bx, by, '|')
	r.set(bx, by, 'O')
}

func (r *LiveRenderer) render(s *dynamo.SimulationState, in sim.Input) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  %s\n", r.title, s.Time, keys(in)))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  angle=%.1f°  omega=%.2f  cart_x=%.3f  cart_vx=%.3f\n",
		s.Bob.Angle*180/math.Pi, s.Bob.AngularVelocity, s.Cart.Position.X, s.Cart.Velocity.X))

	fmt.Fprint(r.out, b.String())
}

func keys(in sim.Input) string {
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
		return ""
	}
	return "[" + strings.Join(k, "+") + "]"
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
