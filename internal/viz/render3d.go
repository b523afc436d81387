package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/projshift/internal/projection"
)

type Edge struct {
	Start, End mgl64.Vec3
}

// Scene is world-space wireframe geometry.
type Scene struct {
	Edges []Edge
}

func (s *Scene) AddEdge(a, b mgl64.Vec3) { s.Edges = append(s.Edges, Edge{a, b}) }

// AddCube adds the twelve edges of an axis-aligned cube.
func (s *Scene) AddCube(center mgl64.Vec3, size float64) {
	h := size / 2
	v := [8]mgl64.Vec3{}
	for i := range v {
		dx, dy, dz := -h, -h, -h
		if i&1 != 0 {
			dx = h
		}
		if i&2 != 0 {
			dy = h
		}
		if i&4 != 0 {
			dz = h
		}
		v[i] = center.Add(mgl64.Vec3{dx, dy, dz})
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				s.AddEdge(v[i], v[i|bit])
			}
		}
	}
}

// AddGrid adds a square ground grid on the plane y = level.
func (s *Scene) AddGrid(level, extent float64, lines int) {
	if lines < 2 {
		return
	}
	step := 2 * extent / float64(lines-1)
	for i := 0; i < lines; i++ {
		o := -extent + float64(i)*step
		s.AddEdge(mgl64.Vec3{o, level, -extent}, mgl64.Vec3{o, level, extent})
		s.AddEdge(mgl64.Vec3{-extent, level, o}, mgl64.Vec3{extent, level, o})
	}
}

// NewDemoScene is a 3x3 block of cubes over a ground grid, deep enough that
// perspective foreshortening is obvious.
func NewDemoScene() *Scene {
	s := &Scene{}
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			s.AddCube(mgl64.Vec3{float64(x) * 4, 0, float64(z) * 4}, 2)
		}
	}
	s.AddGrid(-1, 8, 9)
	return s
}

// DefaultView looks at the origin from slightly above, twelve units back.
func DefaultView() projection.Matrix {
	return mgl64.LookAtV(mgl64.Vec3{0, 3, 12}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
}

// Segment is a projected edge in screen space; Depth is NDC z (larger is
// farther).
type Segment struct {
	X1, Y1, X2, Y2 float64
	Depth          float64
}

// minW keeps clipped vertices strictly in front of the eye.
const minW = 1e-6

// ProjectScene transforms every edge by proj*view, clips it against the near
// plane, and maps it to a w x h screen with y pointing down. Segments are
// returned far to near.
func ProjectScene(s *Scene, view, proj projection.Matrix, w, h float64) []Segment {
	if s == nil {
		return nil
	}
	mvp := proj.Mul4(view)

	out := make([]Segment, 0, len(s.Edges))
	for _, e := range s.Edges {
		if seg, ok := projectEdge(e, mvp, w, h); ok {
			out = append(out, seg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

func projectEdge(e Edge, mvp projection.Matrix, w, h float64) (Segment, bool) {
	a, b, ok := clipNear(mvp.Mul4x1(e.Start.Vec4(1)), mvp.Mul4x1(e.End.Vec4(1)))
	if !ok {
		return Segment{}, false
	}
	x1, y1, z1 := toScreen(a, w, h)
	x2, y2, z2 := toScreen(b, w, h)
	limit := 8 * math.Max(w, h)
	if math.Abs(x1) > limit || math.Abs(y1) > limit || math.Abs(x2) > limit || math.Abs(y2) > limit {
		return Segment{}, false
	}
	return Segment{x1, y1, x2, y2, (z1 + z2) / 2}, true
}

// clipNear clips a clip-space segment to z >= -w.
func clipNear(a, b mgl64.Vec4) (mgl64.Vec4, mgl64.Vec4, bool) {
	da, db := a.Z()+a.W(), b.Z()+b.W()
	if da < 0 && db < 0 {
		return a, b, false
	}
	if da < 0 {
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	} else if db < 0 {
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}
	if a.W() < minW || b.W() < minW {
		return a, b, false
	}
	return a, b, true
}

func toScreen(v mgl64.Vec4, w, h float64) (float64, float64, float64) {
	x, y, z := v.X()/v.W(), v.Y()/v.W(), v.Z()/v.W()
	return (x + 1) / 2 * (w - 1), (1 - y) / 2 * (h - 1), z
}

// Render clears c and draws the scene as seen through proj.
func Render(c *Canvas, s *Scene, view, proj projection.Matrix) {
	if c == nil {
		return
	}
	c.Clear()
	for _, seg := range ProjectScene(s, view, proj, float64(c.PixelWidth()), float64(c.PixelHeight())) {
		c.DrawLine(round(seg.X1), round(seg.Y1), round(seg.X2), round(seg.Y2))
	}
}

func round(v float64) int { return int(math.Round(v)) }
