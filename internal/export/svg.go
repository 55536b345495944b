package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/cartbob/internal/analysis"
	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/vec"
	"github.com/san-kum/cartbob/internal/viz"
)

// CanvasToSVG draws every lit sub-pixel of canvas as a dot. scale is the
// size of one sub-pixel in SVG units.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	cols, rows := canvas.Width*2, canvas.Height*4
	width := float64(cols) * scale
	height := float64(rows) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, color)

	r := scale * 0.4
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// RunToCanvasSVG renders a run the way the terminal host shows it: the bob
// trail and the final frame on a braille canvas of cols x rows cells.
// cartDims is the cart size as a fraction of the window.
func RunToCanvasSVG(snaps []dynamo.Snapshot, cartDims vec.Vec2, cols, rows int, scale float64) string {
	if len(snaps) == 0 || cols <= 0 || rows <= 0 {
		return ""
	}

	c := viz.NewCanvas(cols, rows)
	for i, s := range snaps {
		if i%2 == 0 {
			c.Set(c.Project(s.BobPosition.X, s.BobPosition.Y))
		}
	}

	last := snaps[len(snaps)-1]
	cart := dynamo.NewBody(last.CartPosition)
	cart.Dimensions = cartDims
	bob := dynamo.NewBody(last.BobPosition)
	bob.Radius = dynamo.DefaultBobRadius
	c.DrawScene(cart, bob)

	return CanvasToSVG(c, scale, "#00ff00")
}

// TrajectoryToSVG fits points into a width by height image and draws them
// as one polyline.
func TrajectoryToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	lo, hi := analysis.Bounds(points)

	// Add padding
	rangeX := hi.X - lo.X
	rangeY := hi.Y - lo.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	lo.X -= rangeX * 0.1
	hi.X += rangeX * 0.1
	lo.Y -= rangeY * 0.1
	hi.Y += rangeY * 0.1

	return polylineSVG(points, lo, hi, width, height, strokeColor, "")
}

// RunToSVG draws a recorded run in window space: the bob path, the cart
// path and the rod at the final frame. Normalized y grows upwards, so it
// is flipped for SVG.
func RunToSVG(snaps []dynamo.Snapshot, width, height int) string {
	if len(snaps) < 2 {
		return ""
	}

	lo := analysis.Point{X: 0, Y: 0}
	hi := analysis.Point{X: 1, Y: 1}

	cart := make([]analysis.Point, len(snaps))
	for i, s := range snaps {
		cart[i] = analysis.Point{X: s.CartPosition.X, Y: s.CartPosition.Y}
	}
	last := snaps[len(snaps)-1]
	rod := []analysis.Point{
		{X: last.CartPosition.X, Y: last.CartPosition.Y},
		{X: last.BobPosition.X, Y: last.BobPosition.Y},
	}

	var extra strings.Builder
	extra.WriteString(pathElement(cart, lo, hi, width, height, "#4488ff"))
	extra.WriteString(pathElement(rod, lo, hi, width, height, "#ffffff"))
	bx, by := project(rod[1], lo, hi, width, height)
	extra.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="#ff4444"/>
`, bx, by, int(dynamo.DefaultBobRadius)))

	return polylineSVG(analysis.Trajectory(snaps), lo, hi, width, height, "#00ff00", extra.String())
}

func polylineSVG(points []analysis.Point, lo, hi analysis.Point, width, height int, strokeColor, extra string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
	sb.WriteString(pathElement(points, lo, hi, width, height, strokeColor))
	sb.WriteString(extra)
	sb.WriteString("</svg>")
	return sb.String()
}

func pathElement(points []analysis.Point, lo, hi analysis.Point, width, height int, strokeColor string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range points {
		x, y := project(p, lo, hi, width, height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
	return sb.String()
}

func project(p, lo, hi analysis.Point, width, height int) (float64, float64) {
	x := (p.X - lo.X) / (hi.X - lo.X) * float64(width)
	y := float64(height) - (p.Y-lo.Y)/(hi.Y-lo.Y)*float64(height)
	return x, y
}
