package control

import (
	"fmt"
	"sort"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/sim"
)

// Segment holds Key ("left" or "right") from Start until End seconds of
// simulated time.
type Segment struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Key   string  `yaml:"key"`
	Boost bool    `yaml:"boost"`
}

func (s Segment) active(t float64) bool {
	return t >= s.Start && t < s.End
}

// Script replays a fixed schedule of key presses. Overlapping segments
// combine.
type Script struct {
	segments []Segment
}

func NewScript(segments []Segment) (*Script, error) {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	for i, seg := range sorted {
		if seg.Key != "left" && seg.Key != "right" {
			return nil, fmt.Errorf("segment %d: unknown key %q", i, seg.Key)
		}
		if seg.End <= seg.Start {
			return nil, fmt.Errorf("segment %d: end %.3f not after start %.3f", i, seg.End, seg.Start)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &Script{segments: sorted}, nil
}

func (sc *Script) Next(s *dynamo.SimulationState) sim.Input {
	var in sim.Input
	for _, seg := range sc.segments {
		if seg.Start > s.Time {
			break
		}
		if !seg.active(s.Time) {
			continue
		}
		switch seg.Key {
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		}
		in.Boost = in.Boost || seg.Boost
	}
	return in
}

// Duration is the end of the last segment.
func (sc *Script) Duration() float64 {
	end := 0.0
	for _, seg := range sc.segments {
		if seg.End > end {
			end = seg.End
		}
	}
	return end
}
