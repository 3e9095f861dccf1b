package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl64"
)

type cameraImpl struct {
	mu *sync.Mutex

	position    mgl64.Vec3
	orientation mgl64.Quat
	up          mgl64.Vec3

	projection Projection

	viewMatrix           mgl64.Mat4
	projectionMatrix     mgl64.Mat4
	viewProjectionMatrix mgl64.Mat4

	// lookAt is a pending construction-time target applied after all options.
	lookAt *mgl64.Vec3
}

// Camera is the camera object an orbit controller drives.
// It owns a world position, a world orientation, an up axis and a projection, and keeps
// its view and projection matrices current whenever those change.
type Camera interface {
	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: the camera position
	Position() mgl64.Vec3

	// SetPosition moves the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - p: new world-space position
	SetPosition(p mgl64.Vec3)

	// Orientation returns the world rotation of the camera (looking down local -Z).
	//
	// Returns:
	//   - mgl64.Quat: unit quaternion
	Orientation() mgl64.Quat

	// SetOrientation replaces the world rotation and recomputes the view matrix.
	//
	// Parameters:
	//   - q: unit quaternion
	SetOrientation(q mgl64.Quat)

	// LookAt rotates the camera so it faces target, keeping Up() as the up direction.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl64.Vec3)

	// Up returns the camera's up axis.
	//
	// Returns:
	//   - mgl64.Vec3: the up vector
	Up() mgl64.Vec3

	// SetUp sets the camera's up axis. Orbit controllers read it once at construction.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up mgl64.Vec3)

	// Projection returns a copy of the current projection parameters, or nil if none is set.
	//
	// Returns:
	//   - Projection: Perspective, Orthographic, or nil
	Projection() Projection

	// SetProjection replaces the projection and recomputes the projection matrix.
	//
	// Parameters:
	//   - p: the new projection
	SetProjection(p Projection)

	// SetAspect updates the viewport aspect ratio (width / height). Perspective cameras store it
	// directly; orthographic cameras widen or narrow their horizontal extent around its center.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float64)

	// RecomputeProjection rebuilds the projection matrix from the current projection parameters.
	RecomputeProjection()

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl64.Mat4: the combined matrix
	ViewProjectionMatrix() mgl64.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera at the origin looking down -Z with +Y up.
// The default projection is a 45° vertical field of view, aspect 1, near 0.1 and far 100.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		orientation: mgl64.QuatIdent(),
		up:          common.AxisY,
		projection: Perspective{
			FovY:   45.0 * (math.Pi / 180.0),
			Aspect: 1.0,
			Near:   0.1,
			Far:    100.0,
		},
	}
	for _, option := range options {
		option(c)
	}
	if c.lookAt != nil {
		c.orientation = common.LookAtRotation(c.position, *c.lookAt, c.up)
		c.lookAt = nil
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateView()
}

func (c *cameraImpl) Orientation() mgl64.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(q mgl64.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = q
	c.updateView()
}

func (c *cameraImpl) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = common.LookAtRotation(c.position, target, c.up)
	c.updateView()
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(p Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch p := c.projection.(type) {
	case Perspective:
		p.Aspect = aspect
		c.projection = p
	case Orthographic:
		half := (p.Top - p.Bottom) / 2 * aspect
		cx := (p.Left + p.Right) / 2
		p.Left = cx - half
		p.Right = cx + half
		c.projection = p
	}
	c.updateProjection()
}

func (c *cameraImpl) RecomputeProjection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

// updateView recalculates the view and view-projection matrices from position and orientation.
// Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	c.viewMatrix = common.ViewMatrix(c.position, c.orientation)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

// updateProjection recalculates the projection and view-projection matrices.
// A nil projection leaves an identity projection matrix. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	if c.projection == nil {
		c.projectionMatrix = mgl64.Ident4()
	} else {
		c.projectionMatrix = c.projection.Matrix()
	}
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
