// Package audio sonifies the pendulum: the swing angle bends the pitch of a
// soft triangle pad, bob speed opens a low-pass filter and the cart
// position pans the mix.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/cartbob/internal/dynamo"
	"github.com/san-kum/cartbob/internal/logger"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Base chord, in Hz. The swing angle shifts all voices together by up to
// one octave either way.
var chord = []float64{110.00, 138.59, 164.81, 220.00}

type params struct {
	angle float64
	omega float64
	speed float64
	pan   float64
}

type Processor struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	target params

	// Synth state, touched only from the audio callback.
	time   float64
	smooth params
	filter [2]float64
	delay  [2][]float64
	head   int

	Active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.35)
	return &Processor{
		target: params{pan: 0.5},
		smooth: params{pan: 0.5},
		delay:  [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens an output-only stereo stream on the default device.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Render)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.stream = stream
	a.Active = true
	logger.L().Info("audio started", "sample_rate", SampleRate, "buffer", BufferSize)
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
		a.stream = nil
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdatePhysics feeds the latest frame to the synth. Safe to call from the
// render loop while the stream runs.
func (a *Processor) UpdatePhysics(s *dynamo.SimulationState) {
	a.mu.Lock()
	a.target = params{
		angle: s.Bob.Angle,
		omega: s.Bob.AngularVelocity,
		speed: s.Bob.Velocity.Len(),
		pan:   clamp(s.Cart.Position.X, 0, 1),
	}
	a.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one-pole low-pass filter; it returns the new filter state.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Render fills one stereo buffer. It is the portaudio callback.
func (a *Processor) Render(out [][]float32) {
	a.mu.Lock()
	target := a.target
	a.mu.Unlock()

	const dt = 1.0 / SampleRate
	const vol = 0.25

	for i := range out[0] {
		// Per-sample glide so frame-rate updates do not click.
		a.smooth.angle += (target.angle - a.smooth.angle) * 0.0005
		a.smooth.speed += (target.speed - a.smooth.speed) * 0.0005
		a.smooth.pan += (target.pan - a.smooth.pan) * 0.0005
		a.smooth.omega = target.omega

		bend := math.Pow(2, clamp(a.smooth.angle/math.Pi, -1, 1))
		// Fast swings add vibrato.
		bend *= 1 + 0.004*clamp(math.Abs(a.smooth.omega), 0, 5)*math.Sin(2*math.Pi*5*a.time)
		cutoff := 250.0 + math.Min(a.smooth.speed*4000.0, 2500.0)

		sample := 0.0
		for j, f := range chord {
			lfo := math.Sin(a.time*0.3 + float64(j))
			sample += triangle(a.time*f*bend) * (0.7 + 0.3*lfo) / float64(len(chord))
		}

		panR := a.smooth.pan
		panL := 1 - panR
		a.filter[0] = lpf(sample*panL*2, cutoff, dt, a.filter[0])
		a.filter[1] = lpf(sample*panR*2, cutoff, dt, a.filter[1])

		dl := a.delay[0][a.head]
		dr := a.delay[1][a.head]
		mixL := a.filter[0] + dl*0.3 + dr*0.1
		mixR := a.filter[1] + dr*0.3 + dl*0.1
		a.delay[0][a.head] = mixL * 0.5
		a.delay[1][a.head] = mixR * 0.5
		a.head = (a.head + 1) % len(a.delay[0])

		out[0][i] = float32(clamp(mixL*vol, -1, 1))
		out[1][i] = float32(clamp(mixR*vol, -1, 1))

		a.time += dt
	}
}
