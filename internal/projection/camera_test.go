package projection

import (
	"errors"
	"math"
	"testing"
)

func TestComputeOrthographic(t *testing.T) {
	p := DefaultParams()
	m := Compute(p, Orthographic)

	if m.At(3, 3) != 1 {
		t.Errorf("orthographic m[3][3] = %g, want 1", m.At(3, 3))
	}
	if m.At(3, 2) != 0 {
		t.Errorf("orthographic m[3][2] = %g, want 0", m.At(3, 2))
	}
	want := 1 / p.OrthographicSize
	if diff := m.At(1, 1) - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("orthographic m[1][1] = %g, want %g", m.At(1, 1), want)
	}
}

func TestComputePerspective(t *testing.T) {
	m := Compute(DefaultParams(), Perspective)

	if m.At(3, 2) != -1 {
		t.Errorf("perspective m[3][2] = %g, want -1", m.At(3, 2))
	}
	if m.At(3, 3) != 0 {
		t.Errorf("perspective m[3][3] = %g, want 0", m.At(3, 3))
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"default", func(*Params) {}, nil},
		{"zero fov", func(p *Params) { p.FieldOfView = 0 }, ErrInvalidFieldOfView},
		{"straight fov", func(p *Params) { p.FieldOfView = 180 }, ErrInvalidFieldOfView},
		{"negative aspect", func(p *Params) { p.Aspect = -1 }, ErrInvalidAspect},
		{"zero size", func(p *Params) { p.OrthographicSize = 0 }, ErrInvalidSize},
		{"zero near", func(p *Params) { p.Near = 0 }, ErrInvalidClipPlanes},
		{"far before near", func(p *Params) { p.Far = 0.1 }, ErrInvalidClipPlanes},
		{"nan fov", func(p *Params) { p.FieldOfView = math.NaN() }, ErrInvalidFieldOfView},
		{"nan aspect", func(p *Params) { p.Aspect = math.NaN() }, ErrInvalidAspect},
		{"infinite aspect", func(p *Params) { p.Aspect = math.Inf(1) }, ErrInvalidAspect},
		{"nan size", func(p *Params) { p.OrthographicSize = math.NaN() }, ErrInvalidSize},
		{"infinite size", func(p *Params) { p.OrthographicSize = math.Inf(1) }, ErrInvalidSize},
		{"nan near", func(p *Params) { p.Near = math.NaN() }, ErrInvalidClipPlanes},
		{"nan far", func(p *Params) { p.Far = math.NaN() }, ErrInvalidClipPlanes},
		{"infinite far", func(p *Params) { p.Far = math.Inf(1) }, ErrInvalidClipPlanes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCameraCustomMatrix(t *testing.T) {
	cam := NewCamera(DefaultParams(), Orthographic)
	native := cam.ProjectionMatrix()

	if cam.IsCustom() {
		t.Fatal("new camera should not have a custom matrix")
	}

	custom := RowwiseLerp(native, cam.ProjectionMatrixFor(Perspective), 0.3)
	cam.SetProjectionMatrix(custom)
	if !cam.IsCustom() || cam.ProjectionMatrix() != custom {
		t.Fatal("custom matrix not installed")
	}

	cam.SetMode(Perspective)
	if cam.ProjectionMatrix() != custom {
		t.Error("changing mode must not drop a custom matrix")
	}

	cam.ResetProjectionMatrix()
	if cam.IsCustom() {
		t.Error("reset should drop the custom matrix")
	}
	if cam.ProjectionMatrix() != Compute(cam.Params(), Perspective) {
		t.Error("reset should recompute the native matrix for the current mode")
	}
}

func TestProjectionMatrixForHasNoSideEffects(t *testing.T) {
	cam := NewCamera(DefaultParams(), Orthographic)
	before := cam.ProjectionMatrix()

	_ = cam.ProjectionMatrixFor(Perspective)

	if cam.Mode() != Orthographic {
		t.Error("mode changed")
	}
	if cam.ProjectionMatrix() != before {
		t.Error("matrix changed")
	}
}

func TestModeHelpers(t *testing.T) {
	if Orthographic.Opposite() != Perspective || Perspective.Opposite() != Orthographic {
		t.Error("Opposite should flip the mode")
	}
	for in, want := range map[string]Mode{"ortho": Orthographic, "Perspective": Perspective, " persp ": Perspective} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("isometric"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if Orthographic.String() != "orthographic" {
		t.Errorf("unexpected String(): %s", Orthographic)
	}
}
