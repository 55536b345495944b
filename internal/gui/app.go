package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/cartbob/internal/audio"
	"github.com/san-kum/cartbob/internal/config"
	"github.com/san-kum/cartbob/internal/logger"
	"github.com/san-kum/cartbob/internal/sim"
)

const (
	// PrimeDt is the settling step taken before the first frame.
	PrimeDt = 0.016
	// fpsRefresh is how often, in seconds, the FPS readout is updated.
	fpsRefresh = 0.2
)

var (
	ColBg     = rl.NewColor(10, 10, 10, 255)
	ColGround = rl.NewColor(90, 90, 90, 255)
	ColCart   = rl.NewColor(180, 180, 180, 255)
	ColRod    = rl.NewColor(140, 140, 140, 255)
	ColBob    = rl.NewColor(255, 255, 255, 255)
	ColText   = rl.NewColor(140, 140, 140, 255)
	ColDim    = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Sim    *sim.Simulation
	Driver sim.Driver // nil means the keyboard
	Font   rl.Font
	Audio  *audio.Processor

	fps       int32
	fpsTimer  float64
	lastTitle string
	quit      bool
}

// Options for a window session.
type Options struct {
	Audio bool
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), title(cfg.Init.Running))
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when path is empty.
func loadFont(path string) rl.Font {
	if path == "" {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens a window and drives s until the window closes or a physics step
// fails. A step failure is returned.
func Run(cfg *config.Config, s *sim.Simulation, driver sim.Driver, opts Options) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := &App{
		Sim:    s,
		Driver: driver,
		Font:   loadFont(cfg.Window.Font),
	}
	if opts.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			logger.L().Warn("audio unavailable", "err", err)
		} else {
			app.Audio = proc
			defer proc.Stop()
		}
	}

	if err := s.Prime(PrimeDt); err != nil {
		return fmt.Errorf("prime: %w", err)
	}
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() && !a.quit {
		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

func (a *App) input() sim.Input {
	if a.Driver != nil {
		return a.Driver.Next(a.Sim.State)
	}
	return sim.Input{
		Left:  rl.IsKeyDown(rl.KeyA),
		Right: rl.IsKeyDown(rl.KeyD),
		Boost: rl.IsKeyDown(rl.KeyLeftShift),
	}
}

// frameDt substitutes PrimeDt for the zero frame time raylib reports
// before the first frame has been timed.
func frameDt(raw float64) float64 {
	if raw <= 0 {
		return PrimeDt
	}
	return raw
}

func (a *App) Update() error {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return nil
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		running := a.Sim.Toggle()
		logger.L().Debug("toggled", "running", running)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Reset()
	}

	a.Sim.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))

	dt := frameDt(float64(rl.GetFrameTime()))
	if err := a.Sim.Frame(a.input(), dt); err != nil {
		return fmt.Errorf("frame at t=%.3f: %w", a.Sim.State.Time, err)
	}

	if t := title(a.Sim.Running()); t != a.lastTitle {
		rl.SetWindowTitle(t)
		a.lastTitle = t
	}

	a.fpsTimer += dt
	if a.fpsTimer >= fpsRefresh || a.fps == 0 {
		a.fps = rl.GetFPS()
		a.fpsTimer = 0
	}

	if a.Audio != nil {
		a.Audio.UpdatePhysics(a.Sim.State)
	}
	return nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	w, h := a.Sim.WindowSize()
	drawScene(a.Sim.State, w, h)

	y := float32(10)
	a.drawText(fmt.Sprintf("FPS: %d", a.fps), 10, y, 20, ColText)
	for _, line := range overlayLines(a.Sim.State) {
		y += 22
		a.drawText(line, 10, y, 18, ColText)
	}
	a.drawText("A/D move  SHIFT boost  SPACE pause  R reset  Q quit", 10, float32(h)-26, 16, ColDim)

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(x, y), size, 1, color)
}
