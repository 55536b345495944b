package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/physics"
	"github.com/san-kum/cartbob/internal/vec"
)

const dt = 1.0 / 120

var _ = Describe("Step", func() {
	var (
		s *dynamo.SimulationState
		p dynamo.Params
	)

	BeforeEach(func() {
		s = dynamo.NewState()
		p = dynamo.DefaultParams()
	})

	Describe("bob acceleration", func() {
		DescribeTable("is gravity minus cart acceleration for any mass",
			func(mass float64) {
				s.Bob.Mass = mass
				s.Cart.Acceleration = vec.New(2.5, -0.5)

				acc, err := physics.BobAcceleration(s, p)
				Expect(err).NotTo(HaveOccurred())

				want := p.Gravity.Sub(s.Cart.Acceleration)
				Expect(acc.X).To(BeNumerically("~", want.X, 1e-12))
				Expect(acc.Y).To(BeNumerically("~", want.Y, 1e-12))
			},
			Entry("unit mass", 1.0),
			Entry("light bob", 0.01),
			Entry("heavy bob", 250.0),
		)

		It("fails with a division error for a massless bob", func() {
			s.Bob.Mass = 0
			err := physics.Step(s, p, dt)
			Expect(err).To(MatchError(vec.ErrDivisionByZero))

			var stepErr *dynamo.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Step).To(Equal(0))
		})
	})

	Describe("distance constraint", func() {
		DescribeTable("restores the rest length on a square window with a stationary cart",
			func(x, y float64) {
				s.Aspect = 1
				s.Bob.Position = vec.New(x, y)
				s.Bob.PrevPosition = s.Bob.Position

				Expect(physics.Step(s, p, dt)).To(Succeed())

				d := physics.Distance(s.Bob.Position, s.Cart.Position, physics.AspectScale(s.Aspect))
				Expect(d).To(BeNumerically("~", p.RestLength, 1e-9))
			},
			Entry("below", 0.5, 0.1),
			Entry("right", 0.9, 0.5),
			Entry("close diagonal", 0.52, 0.47),
			Entry("far away", 3.0, -2.0),
		)

		It("restores the rest length along the horizontal for a wide window", func() {
			s.Bob.Position = vec.New(0.9, 0.5)
			s.Bob.PrevPosition = s.Bob.Position
			p.Gravity = vec.Zero

			Expect(physics.Step(s, p, dt)).To(Succeed())

			d := physics.Distance(s.Bob.Position, s.Cart.Position, physics.AspectScale(s.Aspect))
			Expect(d).To(BeNumerically("~", p.RestLength, 1e-9))
		})

		It("applies the scaled-space correction to raw coordinates", func() {
			s.Aspect = 2
			s.Bob.Position = vec.New(0.5, 0.0)
			s.Bob.PrevPosition = s.Bob.Position
			p.Gravity = vec.Zero

			Expect(physics.Step(s, p, dt)).To(Succeed())

			// scaled delta is (0, -0.25): already at rest length, so the raw
			// position is untouched even though it sits 0.5 below the cart
			Expect(s.Bob.Position.X).To(BeNumerically("~", 0.5, 1e-12))
			Expect(s.Bob.Position.Y).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("leaves a bob sitting on the cart in place", func() {
			p.Gravity = vec.Zero
			Expect(physics.Step(s, p, dt)).To(Succeed())
			Expect(s.Bob.Position.Equal(s.Cart.Position)).To(BeTrue())
			Expect(s.Bob.IsValid()).To(BeTrue())
		})
	})

	Describe("angle", func() {
		scale := vec.New(1, 1)
		cart := vec.New(0, 0)

		It("is zero straight below the cart", func() {
			Expect(physics.Angle(vec.New(0, -1), cart, scale)).To(BeNumerically("~", 0, 1e-15))
		})

		It("is pi/2 to the right of the cart", func() {
			Expect(physics.Angle(vec.New(1, 0), cart, scale)).To(BeNumerically("~", math.Pi/2, 1e-15))
		})

		It("is -pi/2 to the left of the cart", func() {
			Expect(physics.Angle(vec.New(-1, 0), cart, scale)).To(BeNumerically("~", -math.Pi/2, 1e-15))
		})

		It("reports the raw jump when the bob crosses the branch cut", func() {
			s.Aspect = 1
			p.Gravity = vec.Zero
			s.Bob.Position = vec.New(0.4, 0.729)
			s.Bob.PrevPosition = s.Bob.Position
			s.Bob.Velocity = vec.New(4, 0)
			Expect(physics.Step(s, p, dt)).To(Succeed())
			before := s.Bob.Angle
			Expect(before).To(BeNumerically("<", 0))

			for i := 0; i < 50 && s.Bob.Angle < 0; i++ {
				Expect(physics.Step(s, p, dt)).To(Succeed())
			}
			Expect(s.Bob.Angle).To(BeNumerically(">", 0))
			Expect(math.Abs(s.Bob.AngularVelocity)).To(BeNumerically(">", math.Pi/dt))
		})
	})

	Describe("damping", func() {
		It("scales velocity by the damping factor per call when nothing else acts", func() {
			p.Gravity = vec.Zero
			s.Aspect = 1
			s.Cart.Velocity = vec.New(0.1, 0)
			s.Cart.Position = vec.New(0.2, 0.9)
			s.Cart.PrevPosition = s.Cart.Position

			v0 := s.Cart.Velocity.Len()
			prev := v0
			for i := 1; i <= 20; i++ {
				Expect(physics.Step(s, p, dt)).To(Succeed())
				v := s.Cart.Velocity.Len()
				Expect(v).To(BeNumerically("<", prev))
				Expect(v).To(BeNumerically("~", v0*math.Pow(p.Damping, float64(i)), 1e-9))
				prev = v
			}
		})
	})

	Describe("cart", func() {
		It("integrates its acceleration and resets it", func() {
			s.Cart.Acceleration = vec.New(10, 0)
			Expect(physics.Step(s, p, dt)).To(Succeed())

			Expect(s.Cart.Acceleration).To(Equal(vec.Zero))
			Expect(s.Cart.Position.X).To(BeNumerically(">", 0.5))
			Expect(s.Cart.Velocity.X).To(BeNumerically("~", 10*dt*p.Damping, 1e-9))
		})

		It("pushes the bob against the cart acceleration", func() {
			s.Bob.Position = vec.New(0.5, 0.5-p.RestLength)
			s.Bob.PrevPosition = s.Bob.Position
			s.Cart.Acceleration = vec.New(50, 0)

			Expect(physics.Step(s, p, dt)).To(Succeed())
			Expect(s.Bob.Position.X).To(BeNumerically("<", 0.5))
			Expect(s.Bob.Acceleration).To(Equal(vec.Zero))
		})

		It("fails with a division error for a zero time step", func() {
			err := physics.Step(s, p, 0)
			Expect(err).To(MatchError(vec.ErrDivisionByZero))
		})
	})

	It("counts steps and time", func() {
		for i := 0; i < 3; i++ {
			Expect(physics.Step(s, p, dt)).To(Succeed())
		}
		Expect(s.Steps).To(Equal(3))
		Expect(s.Time).To(BeNumerically("~", 3*dt, 1e-12))
	})
})
