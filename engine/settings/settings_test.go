package settings

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

func newController() *camera.OrbitController {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10), camera.WithLookAt(0, 0, 0))
	return camera.NewOrbitController(cam, nil)
}

const fullDoc = `
enabled: true
target: [1, 2, 3]
min_distance: 2
max_distance: .inf
min_zoom: 0.5
max_zoom: 4
min_polar_angle: 0.1
max_polar_angle: 1.5
min_azimuth_angle: -.inf
max_azimuth_angle: .inf
enable_damping: true
damping_factor: 0.1
enable_zoom: false
zoom_speed: 2
enable_rotate: true
rotate_speed: 0.5
enable_pan: true
key_pan_speed: 14
auto_rotate: true
auto_rotate_speed: 4
enable_keys: false
keys:
  left: 65
  up: 87
  right: 68
  bottom: 83
mouse_buttons:
  orbit: right
  zoom: middle
  pan: left
`

func TestParseAndApplyFullDocument(t *testing.T) {
	s, err := Parse([]byte(fullDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.MaxDistance == nil || !math.IsInf(*s.MaxDistance, 1) {
		t.Fatalf("MaxDistance = %v, want +Inf", s.MaxDistance)
	}

	oc := newController()
	if err := s.Apply(oc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	c := oc.Constraint
	if c.Target != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Target = %v", c.Target)
	}
	if c.MinDistance != 2 || !math.IsInf(c.MaxDistance, 1) || c.MinZoom != 0.5 || c.MaxZoom != 4 {
		t.Errorf("distance/zoom limits = %+v", c.Limits)
	}
	if c.MinPolarAngle != 0.1 || c.MaxPolarAngle != 1.5 || !math.IsInf(c.MinAzimuthAngle, -1) {
		t.Errorf("angle limits = %+v", c.Limits)
	}
	if !c.EnableDamping || c.DampingFactor != 0.1 {
		t.Errorf("damping = %v %v", c.EnableDamping, c.DampingFactor)
	}
	if oc.EnableZoom || oc.ZoomSpeed != 2 || oc.RotateSpeed != 0.5 || oc.KeyPanSpeed != 14 {
		t.Errorf("controller speeds = %v %v %v %v", oc.EnableZoom, oc.ZoomSpeed, oc.RotateSpeed, oc.KeyPanSpeed)
	}
	if !oc.AutoRotate || oc.AutoRotateSpeed != 4 || oc.EnableKeys {
		t.Errorf("auto-rotate/keys = %v %v %v", oc.AutoRotate, oc.AutoRotateSpeed, oc.EnableKeys)
	}
	if oc.Keys != (camera.KeyBindings{Left: 65, Up: 87, Right: 68, Bottom: 83}) {
		t.Errorf("Keys = %+v", oc.Keys)
	}
	want := camera.ButtonBindings{Orbit: input.MouseButtonRight, Zoom: input.MouseButtonMiddle, Pan: input.MouseButtonLeft}
	if oc.MouseButtons != want {
		t.Errorf("MouseButtons = %+v, want %+v", oc.MouseButtons, want)
	}
}

func TestApplyPartialDocument(t *testing.T) {
	s, err := Parse([]byte("max_distance: 50\nkeys:\n  up: 87\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	oc := newController()
	if err := s.Apply(oc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if oc.Constraint.MaxDistance != 50 {
		t.Errorf("MaxDistance = %v, want 50", oc.Constraint.MaxDistance)
	}
	if oc.Constraint.MinDistance != 0 || oc.KeyPanSpeed != 7 || !oc.EnableZoom {
		t.Error("fields missing from the document should keep their values")
	}
	if oc.Keys.Up != 87 || oc.Keys.Left != common.KeyLeft {
		t.Errorf("Keys = %+v", oc.Keys)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	oc := newController()
	if err := s.Apply(oc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if oc.Constraint.Limits != camera.DefaultLimits() || oc.KeyPanSpeed != 7 || !oc.Enabled {
		t.Error("empty settings changed the controller")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("max_distanse: 5\n")); err == nil {
		t.Error("Parse() should reject unknown keys")
	}
}

func TestApplyRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"inverted distance", "min_distance: 10\nmax_distance: 1\nzoom_speed: 9\n", camera.ErrInvalidLimits},
		{"inverted zoom", "min_zoom: 5\nmax_zoom: 2\n", camera.ErrInvalidLimits},
		{"polar range", "max_polar_angle: 4\n", camera.ErrInvalidLimits},
		{"damping", "damping_factor: 0\nzoom_speed: 9\n", camera.ErrInvalidDamping},
		{"button", "mouse_buttons:\n  orbit: thumb\nzoom_speed: 9\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			oc := newController()
			err = s.Apply(oc)
			if err == nil {
				t.Fatal("Apply() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Apply() error = %v, want %v", err, tt.wantErr)
			}
			if oc.ZoomSpeed != 1 || oc.Constraint.Limits != camera.DefaultLimits() {
				t.Error("rejected settings were partially applied")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbit.yaml")
	if err := os.WriteFile(path, []byte("zoom_speed: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ZoomSpeed == nil || *s.ZoomSpeed != 3 {
		t.Errorf("ZoomSpeed = %v, want 3", s.ZoomSpeed)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
