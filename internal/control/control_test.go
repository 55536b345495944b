package control

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
	"github.com/san-kum/cartbob/internal/vec"
)

func stateAt(x, t float64) *dynamo.SimulationState {
	s := dynamo.NewState()
	s.Cart.Position = vec.New(x, 0.5)
	s.Time = t
	return s
}

func TestNone(t *testing.T) {
	if in := NewNone().Next(stateAt(0.1, 0)); !in.Idle() {
		t.Errorf("expected idle input, got %+v", in)
	}
}

func TestKeyboard(t *testing.T) {
	k := NewKeyboard()
	k.Set(sim.Input{Left: true, Boost: true})

	if diff := cmp.Diff(sim.Input{Left: true, Boost: true}, k.Next(stateAt(0.5, 0))); diff != "" {
		t.Errorf("held keys mismatch (-want +got):\n%s", diff)
	}
	k.Release()
	if in := k.Next(stateAt(0.5, 0)); in != (sim.Input{}) {
		t.Errorf("expected released keys, got %+v", in)
	}
}

func TestPIDDirection(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want sim.Input
	}{
		{"left of target", 0.2, sim.Input{Right: true, Boost: true}},
		{"right of target", 0.8, sim.Input{Left: true, Boost: true}},
		{"near target", 0.49, sim.Input{}},
		{"slightly left", 0.4, sim.Input{Right: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPID(4.0, 0, 0, 0.5)
			if diff := cmp.Diff(tt.want, p.Next(stateAt(tt.x, 0))); diff != "" {
				t.Errorf("input mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPIDDerivative(t *testing.T) {
	p := NewPID(0, 0, 1.0, 0.5)
	p.Output(0.4, 0)

	// error shrinks from 0.1 to 0.0 over 0.1s
	u := p.Output(0.5, 0.1)
	if u > -0.99 || u < -1.01 {
		t.Errorf("expected derivative term near -1, got %f", u)
	}

	p.Reset()
	if u := p.Output(0.5, 0.2); u != 0 {
		t.Errorf("expected zero output after reset at target, got %f", u)
	}
}

func TestPIDSetParam(t *testing.T) {
	p := NewPID(1, 0, 0, 0.5)
	if err := p.SetParam("Kp", 3); err != nil {
		t.Fatal(err)
	}
	if p.GetParams()["Kp"] != 3 {
		t.Errorf("expected Kp 3, got %f", p.Kp)
	}
	if err := p.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestSwingDamperFollowsAngularVelocity(t *testing.T) {
	f := NewSwingDamper()

	s := stateAt(0.5, 0)
	s.Bob.AngularVelocity = 2.0
	if in := f.Next(s); !in.Right {
		t.Errorf("expected right for positive omega, got %+v", in)
	}

	s.Bob.AngularVelocity = -2.0
	if in := f.Next(s); !in.Left {
		t.Errorf("expected left for negative omega, got %+v", in)
	}
}

func TestScript(t *testing.T) {
	sc, err := NewScript([]Segment{
		{Start: 1.0, End: 2.0, Key: "left", Boost: true},
		{Start: 0.0, End: 0.5, Key: "right"},
	})
	if err != nil {
		t.Fatalf("new script: %v", err)
	}

	tests := []struct {
		t    float64
		want sim.Input
	}{
		{0.0, sim.Input{Right: true}},
		{0.49, sim.Input{Right: true}},
		{0.5, sim.Input{}},
		{1.5, sim.Input{Left: true, Boost: true}},
		{2.0, sim.Input{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, sc.Next(stateAt(0.5, tt.t))); diff != "" {
			t.Errorf("t=%.2f: input mismatch (-want +got):\n%s", tt.t, diff)
		}
	}

	if sc.Duration() != 2.0 {
		t.Errorf("expected duration 2, got %f", sc.Duration())
	}
}

func TestScriptRejectsBadSegments(t *testing.T) {
	bad := [][]Segment{
		{{Start: 0, End: 1, Key: "up"}},
		{{Start: 1, End: 1, Key: "left"}},
	}
	for i, segs := range bad {
		if _, err := NewScript(segs); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
