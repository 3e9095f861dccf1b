package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Projection is the closed set of camera projection kinds: Perspective or Orthographic.
// Code that needs kind-specific behavior switches on the concrete type; a nil Projection
// is the only value outside the set and is treated as an unsupported camera.
type Projection interface {
	// Matrix builds the projection matrix for the current parameters.
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix (column-major)
	Matrix() mgl64.Mat4

	isProjection()
}

// Perspective is a symmetric perspective frustum.
type Perspective struct {
	// FovY is the vertical field of view in radians.
	FovY float64
	// Aspect is the viewport aspect ratio (width / height).
	Aspect float64
	// Near is the near clipping plane distance.
	Near float64
	// Far is the far clipping plane distance.
	Far float64
}

// Orthographic is a box projection whose visible extent is divided by Zoom.
type Orthographic struct {
	Left, Right float64
	Top, Bottom float64
	Near, Far   float64
	// Zoom scales the visible extent around its center; 2 shows half the width and height.
	Zoom float64
}

var (
	_ Projection = Perspective{}
	_ Projection = Orthographic{}
)

func (Perspective) isProjection()  {}
func (Orthographic) isProjection() {}

func (p Perspective) Matrix() mgl64.Mat4 {
	return mgl64.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}

func (o Orthographic) Matrix() mgl64.Mat4 {
	dx := (o.Right - o.Left) / (2 * o.Zoom)
	dy := (o.Top - o.Bottom) / (2 * o.Zoom)
	cx := (o.Right + o.Left) / 2
	cy := (o.Top + o.Bottom) / 2
	return mgl64.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, o.Near, o.Far)
}
