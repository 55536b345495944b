package sim

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/vec"
)

func newTestSimulation() *Simulation {
	return NewSimulation(dynamo.NewState(), dynamo.DefaultParams(), DefaultHostParams())
}

func TestResize(t *testing.T) {
	s := newTestSimulation()
	s.Resize(1000, 500)

	if s.State.Aspect != 2 {
		t.Errorf("expected aspect 2, got %f", s.State.Aspect)
	}
	want := vec.New(0.05, 0.06)
	if !s.State.Cart.Dimensions.Equal(want) {
		t.Errorf("expected dimensions %v, got %v", want, s.State.Cart.Dimensions)
	}

	s.Resize(0, 100)
	if s.State.Aspect != 2 {
		t.Error("zero width resize should be ignored")
	}
}

func TestApplyInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{"idle", Input{}, 0},
		{"right", Input{Right: true}, 5},
		{"left", Input{Left: true}, -5},
		{"boosted right", Input{Right: true, Boost: true}, 10},
		{"both cancel", Input{Left: true, Right: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSimulation()
			s.ApplyInput(tt.in, 0.01)
			if got := s.State.Cart.Acceleration.X; math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestApplyInputAccumulates(t *testing.T) {
	s := newTestSimulation()
	s.ApplyInput(Input{Right: true}, 0.01)
	s.ApplyInput(Input{Right: true}, 0.01)
	if got := s.State.Cart.Acceleration.X; math.Abs(got-10) > 1e-12 {
		t.Errorf("expected 10, got %f", got)
	}
}

func TestClampCart(t *testing.T) {
	t.Run("right wall", func(t *testing.T) {
		s := newTestSimulation()
		half := s.State.Cart.Dimensions.X / 2
		s.State.Cart.Position.X = 1 - half/2
		s.State.Cart.Velocity = vec.New(0.3, 0.1)

		if !s.ClampCart() {
			t.Fatal("expected clamp")
		}
		if s.State.Cart.Position.X != 1-half {
			t.Errorf("expected x=%f, got %f", 1-half, s.State.Cart.Position.X)
		}
		if s.State.Cart.Velocity != vec.Zero {
			t.Errorf("expected zero velocity, got %v", s.State.Cart.Velocity)
		}
	})

	t.Run("left wall", func(t *testing.T) {
		s := newTestSimulation()
		half := s.State.Cart.Dimensions.X / 2
		s.State.Cart.Position.X = -0.2
		s.State.Cart.Velocity = vec.New(-0.3, 0)

		if !s.ClampCart() {
			t.Fatal("expected clamp")
		}
		if s.State.Cart.Position.X != half {
			t.Errorf("expected x=%f, got %f", half, s.State.Cart.Position.X)
		}
		if s.State.Cart.Velocity != vec.Zero {
			t.Errorf("expected zero velocity, got %v", s.State.Cart.Velocity)
		}
	})

	t.Run("inside", func(t *testing.T) {
		s := newTestSimulation()
		s.State.Cart.Velocity = vec.New(0.3, 0)
		if s.ClampCart() {
			t.Error("unexpected clamp")
		}
		if s.State.Cart.Velocity.X != 0.3 {
			t.Error("velocity should be untouched")
		}
	})
}

func TestFramePausedIsFrozen(t *testing.T) {
	s := newTestSimulation()
	s.State.Bob.Position = vec.New(0.3, 0.2)
	s.State.Bob.Velocity = vec.New(0.1, -0.2)
	s.State.Cart.Velocity = vec.New(0.05, 0)
	before := *s.State

	for i, dt := range []float64{0.001, 0.016, 0.5, 3.0, 1e-12} {
		in := Input{Left: i%2 == 0, Right: i%3 == 0, Boost: true}
		if err := s.Frame(in, dt); err != nil {
			t.Fatalf("paused frame returned error: %v", err)
		}
	}

	if diff := cmp.Diff(before, *s.State); diff != "" {
		t.Errorf("paused state changed (-before +after):\n%s", diff)
	}
}

func TestFrameAppliesInputBeforeStep(t *testing.T) {
	s := newTestSimulation()
	s.Toggle()

	if err := s.Frame(Input{Right: true}, 0.01); err != nil {
		t.Fatalf("frame failed: %v", err)
	}

	if s.State.Cart.Velocity.X <= 0 {
		t.Errorf("keypress should move the cart on the same frame, velocity %v", s.State.Cart.Velocity)
	}
	if s.State.Cart.Acceleration != vec.Zero {
		t.Errorf("acceleration should be consumed by the step, got %v", s.State.Cart.Acceleration)
	}
	if s.State.Steps != 1 {
		t.Errorf("expected 1 step, got %d", s.State.Steps)
	}
}

func TestToggleAndReset(t *testing.T) {
	s := newTestSimulation()
	initial := *s.State

	if !s.Toggle() || !s.Running() {
		t.Fatal("toggle should start the simulation")
	}
	for i := 0; i < 10; i++ {
		if err := s.Frame(Input{Left: true}, 0.01); err != nil {
			t.Fatal(err)
		}
	}

	s.Reset()
	if s.Running() {
		t.Error("reset should pause")
	}
	if diff := cmp.Diff(initial, *s.State); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
}

func TestPrimeIgnoresPause(t *testing.T) {
	s := newTestSimulation()
	if err := s.Prime(0.016); err != nil {
		t.Fatal(err)
	}
	if s.State.Steps != 1 {
		t.Errorf("expected 1 step, got %d", s.State.Steps)
	}
}
