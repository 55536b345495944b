package metrics

import (
	"math"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// WallTolerance is how close the cart edge must be to a wall to count as
// touching it.
const WallTolerance = 1e-3

type MaxAngle struct {
	max float64
}

func NewMaxAngle() *MaxAngle { return &MaxAngle{} }

func (m *MaxAngle) Name() string { return "max_angle" }

func (m *MaxAngle) Observe(s *dynamo.SimulationState, in sim.Input) {
	m.max = math.Max(m.max, math.Abs(s.Bob.Angle))
}

func (m *MaxAngle) Value() float64 { return m.max }
func (m *MaxAngle) Reset()         { m.max = 0 }

// CartTravel sums the horizontal distance the cart covers.
type CartTravel struct {
	total float64
	prev  float64
	seen  bool
}

func NewCartTravel() *CartTravel { return &CartTravel{} }

func (c *CartTravel) Name() string { return "cart_travel" }

func (c *CartTravel) Observe(s *dynamo.SimulationState, in sim.Input) {
	x := s.Cart.Position.X
	if c.seen {
		c.total += math.Abs(x - c.prev)
	}
	c.prev = x
	c.seen = true
}

func (c *CartTravel) Value() float64 { return c.total }

func (c *CartTravel) Reset() {
	c.total = 0
	c.prev = 0
	c.seen = false
}

// WallHits counts arrivals at either wall. Resting against a wall counts
// once.
type WallHits struct {
	hits     int
	touching bool
}

func NewWallHits() *WallHits { return &WallHits{} }

func (w *WallHits) Name() string { return "wall_hits" }

func (w *WallHits) Observe(s *dynamo.SimulationState, in sim.Input) {
	c := s.Cart
	half := c.Dimensions.X / 2
	touching := c.Position.X-half <= WallTolerance || c.Position.X+half >= 1-WallTolerance
	if touching && !w.touching {
		w.hits++
	}
	w.touching = touching
}

func (w *WallHits) Value() float64 { return float64(w.hits) }

func (w *WallHits) Reset() {
	w.hits = 0
	w.touching = false
}

// Defaults is the metric set every recorded run carries.
func Defaults(p dynamo.Params) []sim.Metric {
	return []sim.Metric{
		NewConstraintError(p),
		NewStability(p, 0.01),
		NewMaxAngle(),
		NewKineticEnergy(),
		NewEnergyDrift(p),
		NewCartTravel(),
		NewWallHits(),
		NewControlEffort(),
	}
}
