package viz

import (
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
)

// Project maps normalized window coordinates to canvas sub-pixels with y
// pointing down.
func (c *Canvas) Project(x, y float64) (int, int) {
	cw, ch := c.Width*2, c.Height*4
	return int(math.Round(x * float64(cw-1))), int(math.Round((1 - y) * float64(ch-1)))
}

// DrawScene draws the ground under the cart, the cart outline, the rod and
// the bob. One cell stands for charW x charH window pixels.
func (c *Canvas) DrawScene(cart, bob dynamo.Body) {
	cx, cy := c.Project(cart.Position.X, cart.Position.Y)
	bx, by := c.Project(bob.Position.X, bob.Position.Y)

	halfW := int(math.Round(cart.Dimensions.X * float64(c.Width*2) / 2))
	halfH := int(math.Round(cart.Dimensions.Y * float64(c.Height*4) / 2))

	ground := cy + halfH + 1
	c.DrawLine(0, ground, c.Width*2-1, ground)

	c.DrawRect(cx-halfW, cy-halfH, cx+halfW, cy+halfH)
	c.DrawLine(cx, cy, bx, by)
	c.FillCircle(bx, by, int(math.Max(1, bob.Radius/charW*2)))
}
