package export

import (
	"strings"
	"testing"

	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected dimensions")
	}
}

func TestSegmentsToSVG(t *testing.T) {
	segs := []viz.Segment{{X1: 0, Y1: 0, X2: 10, Y2: 10}, {X1: 5, Y1: 5, X2: 6, Y2: 6}}
	svg := SegmentsToSVG(segs, 100, 50, "#00ffff")
	if got := strings.Count(svg, "<line"); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}
	if !strings.Contains(svg, `stroke="#00ffff"`) {
		t.Error("stroke color missing")
	}
}

func TestCurveToSVG(t *testing.T) {
	if CurveToSVG([]sim.Frame{{}}, 100, 100, "#fff") != "" {
		t.Error("single frame should give empty output")
	}

	frames := []sim.Frame{
		{Time: 0.5, Eased: 0.25},
		{Time: 1, Eased: 1, Final: true},
	}
	svg := CurveToSVG(frames, 200, 100, "#00ff88")
	if !strings.Contains(svg, "<path") || !strings.Contains(svg, "stroke-dasharray") {
		t.Error("missing curve or reference line")
	}
	if got := strings.Count(svg, " L"); got != len(frames) {
		t.Errorf("path segments = %d, want %d", got, len(frames))
	}
	// final point sits at the top right inside the padding
	if !strings.Contains(svg, "L190.0,5.0") {
		t.Errorf("final point missing: %s", svg)
	}
}
