package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/viz"
)

const svgBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)
}

// CanvasToSVG draws every lit sub-pixel of canvas as a dot, scale units
// apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	svgHeader(&sb, width, height)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	r := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SegmentsToSVG draws projected wireframe segments as lines on a
// width x height image.
func SegmentsToSVG(segs []viz.Segment, width, height int, strokeColor string) string {
	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="1">`+"\n", strokeColor)
	for _, s := range segs {
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", s.X1, s.Y1, s.X2, s.Y2)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CurveToSVG plots the eased factor of a recorded transition against time,
// with the linear ramp dashed for reference. The y axis is fixed to [0, 1].
func CurveToSVG(frames []sim.Frame, width, height int, strokeColor string) string {
	if len(frames) < 2 {
		return ""
	}

	total := frames[len(frames)-1].Time
	if total <= 0 {
		total = 1
	}

	const pad = 0.05
	w, h := float64(width), float64(height)
	px := func(t float64) float64 { return (pad + (1-2*pad)*t/total) * w }
	py := func(v float64) float64 { return h - (pad+(1-2*pad)*v)*h }

	var sb strings.Builder
	svgHeader(&sb, w, h)

	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>`+"\n",
		px(0), py(0), px(total), py(1))

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`, strokeColor, px(0), py(0))
	for _, f := range frames {
		fmt.Fprintf(&sb, " L%.1f,%.1f", px(f.Time), py(f.Eased))
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
