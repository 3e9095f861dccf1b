package camera

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl64"
)

// orbitEpsilon keeps the polar angle off the poles and is the change-detection threshold.
const orbitEpsilon = 0.000001

// OrbitConstraint is the numerical core of orbit control. Rotation, pan and dolly requests
// accumulate as pending deltas; Update applies them in one step, enforces Limits, writes the
// camera position and orientation, and reports whether the camera visibly moved.
//
// The scratch state is reused between calls, so an OrbitConstraint must not be used from
// more than one goroutine, and Update and Pan must not be re-entered on the same instance.
type OrbitConstraint struct {
	Limits

	// Target is the point the camera orbits and pans around.
	Target mgl64.Vec3

	// EnableDamping keeps a decaying share of each rotation for the following frames.
	// While damping is in flight Update must keep being called every frame.
	EnableDamping bool
	// DampingFactor is the share of the pending rotation removed per Update.
	DampingFactor float64

	// Logger receives warnings about unsupported camera projections.
	Logger *log.Logger

	camera Camera

	// Spherical coordinates computed by the last Update.
	theta float64
	phi   float64

	// Pending changes.
	thetaDelta  float64
	phiDelta    float64
	scale       float64
	panOffset   mgl64.Vec3
	zoomChanged bool

	// upFrame rotates the camera's up axis onto +Y; upFrameInverse rotates back.
	upFrame        mgl64.Quat
	upFrameInverse mgl64.Quat

	lastPosition    mgl64.Vec3
	lastOrientation mgl64.Quat

	offset mgl64.Vec3
}

// NewOrbitConstraint creates a constraint for cam with default limits and damping disabled.
// The orbit axis is cam's up vector at this moment; later SetUp calls on the camera are not observed.
//
// Parameters:
//   - cam: the camera to drive
//
// Returns:
//   - *OrbitConstraint: the new constraint
func NewOrbitConstraint(cam Camera) *OrbitConstraint {
	upFrame := mgl64.QuatBetweenVectors(cam.Up(), common.AxisY)
	return &OrbitConstraint{
		Limits:          DefaultLimits(),
		DampingFactor:   0.25,
		Logger:          log.Default(),
		camera:          cam,
		scale:           1,
		upFrame:         upFrame,
		upFrameInverse:  upFrame.Inverse(),
		lastPosition:    cam.Position(),
		lastOrientation: cam.Orientation(),
	}
}

// Camera returns the camera this constraint drives.
func (c *OrbitConstraint) Camera() Camera {
	return c.camera
}

// PolarAngle returns the angle from the up axis computed by the last Update, in radians.
func (c *OrbitConstraint) PolarAngle() float64 {
	return c.phi
}

// AzimuthalAngle returns the angle around the up axis computed by the last Update, in radians.
func (c *OrbitConstraint) AzimuthalAngle() float64 {
	return c.theta
}

// SetLimits validates l and installs it. On error the current limits are kept.
//
// Parameters:
//   - l: the new limits
//
// Returns:
//   - error: wrapping ErrInvalidLimits if l is inconsistent
func (c *OrbitConstraint) SetLimits(l Limits) error {
	if err := l.Validate(); err != nil {
		return err
	}
	c.Limits = l
	return nil
}

// RotateLeft queues a rotation around the up axis. Positive angles orbit the camera to the left.
//
// Parameters:
//   - angle: rotation in radians
func (c *OrbitConstraint) RotateLeft(angle float64) {
	c.thetaDelta -= angle
}

// RotateUp queues a rotation toward the up axis. Positive angles orbit the camera upward.
//
// Parameters:
//   - angle: rotation in radians
func (c *OrbitConstraint) RotateUp(angle float64) {
	c.phiDelta -= angle
}

// PanLeft queues a world-space move of the target along the camera's local -X axis.
//
// Parameters:
//   - distance: world units to move
func (c *OrbitConstraint) PanLeft(distance float64) {
	v := common.LocalAxis(c.camera.Orientation(), 0).Mul(-distance)
	c.panOffset = c.panOffset.Add(v)
}

// PanUp queues a world-space move of the target along the camera's local +Y axis.
//
// Parameters:
//   - distance: world units to move
func (c *OrbitConstraint) PanUp(distance float64) {
	v := common.LocalAxis(c.camera.Orientation(), 1).Mul(distance)
	c.panOffset = c.panOffset.Add(v)
}

// Pan converts a pixel drag into a world-space pan for the camera's projection.
// Right and down are positive. Perspective cameras scale both axes by the viewport height so
// the pan speed is independent of aspect ratio; orthographic cameras scale each axis by its own extent.
// An unsupported projection logs a warning and queues nothing, and so does an empty viewport.
//
// Parameters:
//   - deltaX, deltaY: drag distance in pixels
//   - width, height: viewport size in pixels
func (c *OrbitConstraint) Pan(deltaX, deltaY, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	switch p := c.camera.Projection().(type) {
	case Perspective:
		// half of the fov is center to top of screen
		targetDistance := c.camera.Position().Sub(c.Target).Len() * math.Tan(p.FovY/2)
		c.PanLeft(2 * deltaX * targetDistance / height)
		c.PanUp(2 * deltaY * targetDistance / height)
	case Orthographic:
		c.PanLeft(deltaX * (p.Right - p.Left) / width)
		c.PanUp(deltaY * (p.Top - p.Bottom) / height)
	default:
		c.Logger.Printf("[OrbitConstraint] WARNING: unknown camera projection %T, pan disabled", p)
	}
}

// DollyIn moves away from the target: the perspective orbit radius is divided by dollyScale on the
// next Update, or the orthographic zoom is multiplied by it immediately and clamped to
// [MinZoom, MaxZoom]. With the usual dollyScale below 1 this pulls the view out.
//
// Parameters:
//   - dollyScale: multiplicative step
func (c *OrbitConstraint) DollyIn(dollyScale float64) {
	switch p := c.camera.Projection().(type) {
	case Perspective:
		c.scale /= dollyScale
	case Orthographic:
		p.Zoom = common.Clamp(p.Zoom*dollyScale, c.MinZoom, c.MaxZoom)
		c.camera.SetProjection(p)
		c.zoomChanged = true
	default:
		c.Logger.Printf("[OrbitConstraint] WARNING: unknown camera projection %T, dolly/zoom disabled", p)
	}
}

// DollyOut is the inverse of DollyIn: the orbit radius is multiplied by dollyScale, or the
// orthographic zoom divided by it.
//
// Parameters:
//   - dollyScale: multiplicative step
func (c *OrbitConstraint) DollyOut(dollyScale float64) {
	switch p := c.camera.Projection().(type) {
	case Perspective:
		c.scale *= dollyScale
	case Orthographic:
		p.Zoom = common.Clamp(p.Zoom/dollyScale, c.MinZoom, c.MaxZoom)
		c.camera.SetProjection(p)
		c.zoomChanged = true
	default:
		c.Logger.Printf("[OrbitConstraint] WARNING: unknown camera projection %T, dolly/zoom disabled", p)
	}
}

// Update applies every pending delta in one step and reports whether the camera moved or rotated
// by more than the change threshold, or the orthographic zoom changed, since the last reported change.
// Call it once per frame; extra calls in the same frame report no change.
//
// Returns:
//   - bool: true if a visible change occurred
func (c *OrbitConstraint) Update() bool {
	position := c.camera.Position()

	// rotate offset to "y-axis-is-up" space
	c.offset = c.upFrame.Rotate(position.Sub(c.Target))

	// angle from z-axis around y-axis
	c.theta = math.Atan2(c.offset.X(), c.offset.Z())
	// angle from y-axis
	c.phi = math.Atan2(math.Sqrt(c.offset.X()*c.offset.X()+c.offset.Z()*c.offset.Z()), c.offset.Y())

	c.theta += c.thetaDelta
	c.phi += c.phiDelta

	c.theta = common.Clamp(c.theta, c.MinAzimuthAngle, c.MaxAzimuthAngle)
	c.phi = common.Clamp(c.phi, c.MinPolarAngle, c.MaxPolarAngle)
	c.phi = common.Clamp(c.phi, orbitEpsilon, math.Pi-orbitEpsilon)

	radius := common.Clamp(c.offset.Len()*c.scale, c.MinDistance, c.MaxDistance)

	c.Target = c.Target.Add(c.panOffset)

	sinPhi := math.Sin(c.phi)
	c.offset = mgl64.Vec3{
		radius * sinPhi * math.Sin(c.theta),
		radius * math.Cos(c.phi),
		radius * sinPhi * math.Cos(c.theta),
	}

	// rotate offset back to "camera-up-vector-is-up" space
	c.offset = c.upFrameInverse.Rotate(c.offset)

	c.camera.SetPosition(c.Target.Add(c.offset))
	c.camera.LookAt(c.Target)

	if c.EnableDamping {
		c.thetaDelta *= 1 - c.DampingFactor
		c.phiDelta *= 1 - c.DampingFactor
	} else {
		c.thetaDelta = 0
		c.phiDelta = 0
	}
	c.scale = 1
	c.panOffset = mgl64.Vec3{}

	// min(camera displacement, camera rotation in radians)^2 > epsilon,
	// using the small-angle approximation cos(x/2) = 1 - x^2/8
	newPosition := c.camera.Position()
	newOrientation := c.camera.Orientation()
	if c.zoomChanged ||
		c.lastPosition.Sub(newPosition).LenSqr() > orbitEpsilon ||
		8*(1-c.lastOrientation.Dot(newOrientation)) > orbitEpsilon {
		c.lastPosition = newPosition
		c.lastOrientation = newOrientation
		c.zoomChanged = false
		return true
	}
	return false
}
