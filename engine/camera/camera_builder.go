package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl64.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl64.Vec3{x, y, z}
	}
}

// WithLookAt orients the camera toward a point once every other option has been applied,
// so it honors WithPosition and WithUp regardless of option order.
//
// Parameters:
//   - x, y, z: world-space point to face
//
// Returns:
//   - CameraBuilderOption: a function that records the look-at target
func WithLookAt(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lookAt = &mgl64.Vec3{x, y, z}
	}
}

// WithPerspective gives the camera a perspective projection.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width / height)
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithPerspective(fovY, aspect, near, far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = Perspective{FovY: fovY, Aspect: aspect, Near: near, Far: far}
	}
}

// WithOrthographic gives the camera an orthographic projection with zoom 1.
//
// Parameters:
//   - left, right, top, bottom: view-space extent of the box
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithOrthographic(left, right, top, bottom, near, far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = Orthographic{
			Left: left, Right: right,
			Top: top, Bottom: bottom,
			Near: near, Far: far,
			Zoom: 1,
		}
	}
}

// WithProjection sets an arbitrary projection, including nil for a camera with no supported projection.
//
// Parameters:
//   - p: the projection
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}
