package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/projshift/internal/viz"
)

// drawScene projects the wireframe through the camera's live matrix. The
// camera's aspect is honoured by letterboxing the viewport.
func (a *App) drawScene() {
	vw, vh := float64(screenWidth), float64(screenHeight)
	if aspect := a.Camera.Params().Aspect; aspect > 0 {
		if vw/vh > aspect {
			vw = vh * aspect
		} else {
			vh = vw / aspect
		}
	}
	ox := float32((screenWidth - vw) / 2)
	oy := float32((screenHeight - vh) / 2)

	segs := viz.ProjectScene(a.Scene, a.View, a.Camera.ProjectionMatrix(), vw, vh)
	for i, s := range segs {
		rl.DrawLineV(
			rl.NewVector2(ox+float32(s.X1), oy+float32(s.Y1)),
			rl.NewVector2(ox+float32(s.X2), oy+float32(s.Y2)),
			depthColor(i, len(segs)),
		)
	}
}

// depthColor fades from the grid color for the farthest of n segments to the
// accent color for the nearest.
func depthColor(i, n int) rl.Color {
	if n <= 1 {
		return ColAccent
	}
	t := float32(i) / float32(n-1)
	lerp := func(a, b uint8) uint8 { return uint8(float32(a) + (float32(b)-float32(a))*t) }
	return rl.NewColor(
		lerp(ColGrid.R, ColAccent.R),
		lerp(ColGrid.G, ColAccent.G),
		lerp(ColGrid.B, ColAccent.B),
		255,
	)
}

// DrawTelemetry plots the eased factor of the current or last transition on
// a fixed [0, 1] scale.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	rl.DrawRectangleLines(int32(rectX), int32(rectY), int32(width), int32(height), ColGrid)
	points := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)-1))*float32(width)
		py := float32(rectY+height) - float32(v)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText("eased", rectX+width+10, rectY+height-10, 14, ColText)
}
