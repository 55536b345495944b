package analysis

import (
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
)

type Point struct {
	X, Y float64
}

// PhasePortrait pairs each recorded angle with its angular velocity.
func PhasePortrait(snaps []dynamo.Snapshot) []Point {
	points := make([]Point, len(snaps))
	for i, s := range snaps {
		points[i] = Point{X: s.Angle, Y: s.AngularVelocity}
	}
	return points
}

// Trajectory returns the bob positions of a run.
func Trajectory(snaps []dynamo.Snapshot) []Point {
	points := make([]Point, len(snaps))
	for i, s := range snaps {
		points[i] = Point{X: s.BobPosition.X, Y: s.BobPosition.Y}
	}
	return points
}

// Bounds returns the bounding box of points. An empty slice yields zeros.
func Bounds(points []Point) (lo, hi Point) {
	if len(points) == 0 {
		return Point{}, Point{}
	}
	lo = Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range points {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
