package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/vec"
)

func title(running bool) string {
	if running {
		return "cartbob | Running"
	}
	return "cartbob | Paused"
}

// toScreen maps normalized coordinates (origin bottom-left, y up) to window
// pixels (origin top-left, y down).
func toScreen(p vec.Vec2, w, h int) rl.Vector2 {
	return rl.NewVector2(float32(p.X*float64(w)), float32((1-p.Y)*float64(h)))
}

// cartRect returns the cart rectangle in pixels, centred on its position.
func cartRect(c dynamo.Body, w, h int) rl.Rectangle {
	centre := toScreen(c.Position, w, h)
	cw := float32(c.Dimensions.X * float64(w))
	ch := float32(c.Dimensions.Y * float64(h))
	return rl.NewRectangle(centre.X-cw/2, centre.Y-ch/2, cw, ch)
}

func overlayLines(s *dynamo.SimulationState) []string {
	return []string{
		fmt.Sprintf("angle: %.1f deg", s.Bob.Angle*180/math.Pi),
		fmt.Sprintf("cart vel: (%.3f, %.3f)", s.Cart.Velocity.X, s.Cart.Velocity.Y),
		fmt.Sprintf("cart pos: (%.3f, %.3f)", s.Cart.Position.X, s.Cart.Position.Y),
		fmt.Sprintf("bob vel: (%.3f, %.3f)", s.Bob.Velocity.X, s.Bob.Velocity.Y),
		fmt.Sprintf("bob pos: (%.3f, %.3f)", s.Bob.Position.X, s.Bob.Position.Y),
		fmt.Sprintf("ang vel: %.3f rad/s", s.Bob.AngularVelocity),
		fmt.Sprintf("ang pos: %.3f rad", s.Bob.Angle),
	}
}

func drawScene(s *dynamo.SimulationState, w, h int) {
	rect := cartRect(s.Cart, w, h)

	groundY := int32(rect.Y + rect.Height)
	rl.DrawLine(0, groundY, int32(w), groundY, ColGround)

	cart := toScreen(s.Cart.Position, w, h)
	bob := toScreen(s.Bob.Position, w, h)
	rl.DrawLineEx(cart, bob, 2, ColRod)
	rl.DrawRectangleRec(rect, ColCart)
	rl.DrawCircleV(bob, float32(s.Bob.Radius), ColBob)
}
