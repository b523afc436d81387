package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/projshift/internal/config"
	"github.com/san-kum/projshift/internal/logging"
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/transition"
	"github.com/san-kum/projshift/internal/viz"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const (
	screenWidth  = 1280
	screenHeight = 720
	maxTelemetry = 240
	durationStep = 0.25
)

type App struct {
	Config     *config.Config
	PresetName string
	Camera     *projection.Camera
	Tr         *transition.Transitioner
	Scene      *viz.Scene
	View       projection.Matrix
	Duration   float64

	InMenu   bool
	Presets  []string
	Selected int

	Curves   []string
	CurveSel int

	Telemetry []float64
	Font      rl.Font
	Err       error
}

func initWindow(fps int) {
	rl.InitWindow(screenWidth, screenHeight, "projshift")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// NewApp builds an app on cfg. With interactive set it opens on the preset
// menu instead.
func NewApp(cfg *config.Config, name string, interactive bool) (*App, error) {
	a := &App{
		Scene:     viz.NewDemoScene(),
		View:      viz.DefaultView(),
		InMenu:    interactive,
		Presets:   config.ListPresets(),
		Curves:    transition.CurveNames(),
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	if !interactive {
		if err := a.load(cfg, name); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) load(cfg *config.Config, name string) error {
	tr, cam, err := cfg.NewTransitioner(transition.WithObserver(transition.ObserverFunc(a.observe)))
	if err != nil {
		return err
	}
	a.Config, a.PresetName = cfg, name
	a.Camera, a.Tr = cam, tr
	a.Duration = cfg.Duration
	a.Telemetry = a.Telemetry[:0]
	a.CurveSel = 0
	for i, c := range a.Curves {
		if c == cfg.Curve {
			a.CurveSel = i
		}
	}
	logging.Logger().Info("gui loaded", "preset", name, "mode", cam.Mode())
	return nil
}

func (a *App) observe(f transition.Frame) {
	a.Telemetry = append(a.Telemetry, f.Eased)
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

// RunInteractive opens the window on the preset menu and blocks until it is
// closed.
func RunInteractive() error {
	app, err := NewApp(nil, "", true)
	if err != nil {
		return err
	}
	initWindow(config.DefaultFPS)
	defer rl.CloseWindow()
	app.Font = rl.GetFontDefault()
	app.RunLoop()
	return nil
}

// Run opens the window on cfg and blocks until it is closed.
func Run(cfg *config.Config, name string) error {
	app, err := NewApp(cfg, name, false)
	if err != nil {
		return err
	}
	initWindow(cfg.FPS)
	defer rl.CloseWindow()
	app.Font = rl.GetFontDefault()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances the transition by the last frame time.
// It reports true when the user asked to quit.
func (a *App) Update() bool {
	if a.InMenu {
		return a.updateMenu()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyEscape):
		a.InMenu = true
		return false
	case rl.IsKeyPressed(rl.KeyT), rl.IsKeyPressed(rl.KeySpace):
		if !a.Tr.Running() {
			a.Telemetry = a.Telemetry[:0]
			a.Tr.StartTransition(a.Duration)
		}
	case rl.IsKeyPressed(rl.KeyC):
		a.Tr.Cancel()
	case rl.IsKeyPressed(rl.KeyUp):
		a.Duration += durationStep
	case rl.IsKeyPressed(rl.KeyDown):
		a.Duration = max(0, a.Duration-durationStep)
	case rl.IsKeyPressed(rl.KeyN):
		if !a.Tr.Running() && len(a.Curves) > 0 {
			a.CurveSel = (a.CurveSel + 1) % len(a.Curves)
			if c, err := transition.LookupCurve(a.Curves[a.CurveSel]); err == nil {
				a.Tr.SetCurve(c)
			}
		}
	}

	a.Tr.Tick(float64(rl.GetFrameTime()))
	return false
}

func (a *App) updateMenu() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyUp):
		if a.Selected > 0 {
			a.Selected--
		}
	case rl.IsKeyPressed(rl.KeyDown):
		if a.Selected < len(a.Presets)-1 {
			a.Selected++
		}
	case rl.IsKeyPressed(rl.KeyEnter):
		name := a.Presets[a.Selected]
		if err := a.load(config.GetPreset(name), name); err != nil {
			a.Err = err
			return false
		}
		a.Err = nil
		a.InMenu = false
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawScene()
		a.DrawTelemetry()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("projshift", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.PresetName), 170, 34, 16, ColText)

	label, col := viz.ButtonLabel(a.Camera.Mode()), ColSelect
	if a.Tr.Running() {
		label, col = viz.ButtonLabel(a.Tr.State().StartMode), ColTextDim
	}
	rl.DrawRectangleLines(screenWidth-330, 24, 300, 32, col)
	a.drawText(label, screenWidth-318, 32, 16, col)

	a.drawText(fmt.Sprintf("mode %s", a.Camera.Mode()), 30, 70, 16, ColText)
	a.drawText(fmt.Sprintf("duration %.2fs", a.Duration), 30, 92, 16, ColText)
	a.drawText(fmt.Sprintf("curve %s", a.Curves[a.CurveSel]), 30, 114, 16, ColText)

	progress := a.Tr.State().Elapsed
	rl.DrawRectangle(30, 140, int32(200*progress), 6, ColAccent)
	rl.DrawRectangleLines(30, 140, 200, 6, ColTextDim)

	a.drawText("[T] SWITCH  [C] CANCEL  [UP/DOWN] DURATION  [N] CURVE  [ESC] MENU  [Q] QUIT", 560, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("projshift", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 16, rl.Red)
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}
