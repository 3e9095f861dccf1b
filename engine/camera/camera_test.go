package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testEps = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b mgl64.Vec3, eps float64) bool {
	return approxEqual(a[0], b[0], eps) && approxEqual(a[1], b[1], eps) && approxEqual(a[2], b[2], eps)
}

func matApprox(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if !approxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func forward(c Camera) mgl64.Vec3 {
	return c.Orientation().Rotate(mgl64.Vec3{0, 0, -1})
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if c.Position() != (mgl64.Vec3{}) {
		t.Errorf("Position() = %v, want origin", c.Position())
	}
	if !vecApprox(forward(c), mgl64.Vec3{0, 0, -1}, testEps) {
		t.Errorf("forward = %v, want -Z", forward(c))
	}
	if c.Up() != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("Up() = %v, want +Y", c.Up())
	}
	p, ok := c.Projection().(Perspective)
	if !ok {
		t.Fatalf("Projection() = %T, want Perspective", c.Projection())
	}
	if !approxEqual(p.FovY, math.Pi/4, testEps) || p.Aspect != 1 || p.Near != 0.1 || p.Far != 100 {
		t.Errorf("default perspective = %+v", p)
	}
	if !matApprox(c.ViewMatrix(), mgl64.Ident4(), testEps) {
		t.Errorf("ViewMatrix() = %v, want identity", c.ViewMatrix())
	}
}

func TestWithLookAtIgnoresOptionOrder(t *testing.T) {
	a := NewCamera(WithLookAt(0, 0, 0), WithPosition(3, 4, 5))
	b := NewCamera(WithPosition(3, 4, 5), WithLookAt(0, 0, 0))

	want := mgl64.Vec3{-3, -4, -5}.Normalize()
	for name, c := range map[string]Camera{"look-at first": a, "position first": b} {
		if !vecApprox(forward(c), want, 1e-6) {
			t.Errorf("%s: forward = %v, want %v", name, forward(c), want)
		}
	}
}

func TestCameraLookAt(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10))
	c.LookAt(mgl64.Vec3{10, 0, 10})

	if !vecApprox(forward(c), mgl64.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("forward = %v, want +X", forward(c))
	}
	eye := c.ViewMatrix().Mul4x1(mgl64.Vec4{0, 0, 10, 1}).Vec3()
	if !vecApprox(eye, mgl64.Vec3{}, 1e-6) {
		t.Errorf("view * eye = %v, want origin", eye)
	}
}

func TestSetAspect(t *testing.T) {
	t.Run("perspective", func(t *testing.T) {
		c := NewCamera()
		c.SetAspect(2)
		p := c.Projection().(Perspective)
		if p.Aspect != 2 {
			t.Errorf("Aspect = %v, want 2", p.Aspect)
		}
		if !matApprox(c.ProjectionMatrix(), p.Matrix(), testEps) {
			t.Error("projection matrix not recomputed")
		}
	})

	t.Run("orthographic", func(t *testing.T) {
		c := NewCamera(WithOrthographic(-1, 1, 1, -1, 0.1, 100))
		c.SetAspect(2)
		o := c.Projection().(Orthographic)
		if !approxEqual(o.Left, -2, testEps) || !approxEqual(o.Right, 2, testEps) {
			t.Errorf("Left, Right = %v, %v, want -2, 2", o.Left, o.Right)
		}
		if o.Top != 1 || o.Bottom != -1 {
			t.Errorf("Top, Bottom = %v, %v, want unchanged", o.Top, o.Bottom)
		}
	})
}

func TestOrthographicZoom(t *testing.T) {
	tests := []struct {
		name   string
		zoom   float64
		scaleX float64
	}{
		{"unzoomed", 1, 1},
		{"zoomed in", 2, 2},
		{"zoomed out", 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Orthographic{Left: -1, Right: 1, Top: 1, Bottom: -1, Near: 0.1, Far: 100, Zoom: tt.zoom}
			m := o.Matrix()
			if !approxEqual(m[0], tt.scaleX, testEps) || !approxEqual(m[5], tt.scaleX, testEps) {
				t.Errorf("scale = %v, %v, want %v", m[0], m[5], tt.scaleX)
			}
		})
	}
}

func TestNilProjectionIsIdentity(t *testing.T) {
	c := NewCamera(WithProjection(nil))
	if c.Projection() != nil {
		t.Fatalf("Projection() = %v, want nil", c.Projection())
	}
	if !matApprox(c.ProjectionMatrix(), mgl64.Ident4(), testEps) {
		t.Errorf("ProjectionMatrix() = %v, want identity", c.ProjectionMatrix())
	}
	c.RecomputeProjection()
	c.SetAspect(3)
	if c.Projection() != nil {
		t.Error("SetAspect should leave a nil projection alone")
	}
}

func TestViewProjectionMatrix(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3), WithLookAt(0, 0, 0))
	c.SetPosition(mgl64.Vec3{4, 5, 6})
	want := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	if !matApprox(c.ViewProjectionMatrix(), want, testEps) {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", c.ViewProjectionMatrix(), want)
	}
}
