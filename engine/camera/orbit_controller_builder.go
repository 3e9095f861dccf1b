package camera

import (
	"log"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*OrbitController)

// WithTarget sets the point the camera orbits around.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - OrbitControllerOption: a function that sets the target
func WithTarget(x, y, z float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Constraint.Target = mgl64.Vec3{x, y, z}
	}
}

// WithDistanceBounds limits how far a perspective camera can dolly in and out.
//
// Parameters:
//   - minDistance: smallest allowed distance to the target
//   - maxDistance: largest allowed distance to the target, math.Inf(1) for none
//
// Returns:
//   - OrbitControllerOption: a function that sets the distance bounds
func WithDistanceBounds(minDistance, maxDistance float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Constraint.MinDistance = minDistance
		oc.Constraint.MaxDistance = maxDistance
	}
}

// WithZoomBounds limits the zoom of an orthographic camera.
//
// Parameters:
//   - minZoom: smallest allowed zoom
//   - maxZoom: largest allowed zoom, math.Inf(1) for none
//
// Returns:
//   - OrbitControllerOption: a function that sets the zoom bounds
func WithZoomBounds(minZoom, maxZoom float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Constraint.MinZoom = minZoom
		oc.Constraint.MaxZoom = maxZoom
	}
}

// WithPolarAngleBounds limits how far the camera can orbit vertically, in radians within [0, π].
//
// Parameters:
//   - minPolar: smallest angle from the up axis
//   - maxPolar: largest angle from the up axis
//
// Returns:
//   - OrbitControllerOption: a function that sets the polar bounds
func WithPolarAngleBounds(minPolar, maxPolar float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Constraint.MinPolarAngle = minPolar
		oc.Constraint.MaxPolarAngle = maxPolar
	}
}

// WithAzimuthAngleBounds limits how far the camera can orbit horizontally, in radians within [-π, π].
// Pass math.Inf(-1) and math.Inf(1) to leave the azimuth unbounded.
//
// Parameters:
//   - minAzimuth: smallest azimuth
//   - maxAzimuth: largest azimuth
//
// Returns:
//   - OrbitControllerOption: a function that sets the azimuth bounds
func WithAzimuthAngleBounds(minAzimuth, maxAzimuth float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Constraint.MinAzimuthAngle = minAzimuth
		oc.Constraint.MaxAzimuthAngle = maxAzimuth
	}
}

// WithDamping enables inertia with the given damping factor in (0, 1].
// An invalid factor is logged and damping stays disabled.
//
// Parameters:
//   - factor: share of the pending rotation removed per Update
//
// Returns:
//   - OrbitControllerOption: a function that enables damping
func WithDamping(factor float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		if err := ValidateDampingFactor(factor); err != nil {
			oc.Constraint.Logger.Printf("[OrbitController] WARNING: %v, damping left disabled", err)
			return
		}
		oc.Constraint.EnableDamping = true
		oc.Constraint.DampingFactor = factor
	}
}

// WithAutoRotate orbits the target continuously while no gesture is active.
//
// Parameters:
//   - speed: 1 is one turn per 60 seconds at 60 updates per second
//
// Returns:
//   - OrbitControllerOption: a function that enables auto-rotation
func WithAutoRotate(speed float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.AutoRotate = true
		oc.AutoRotateSpeed = speed
	}
}

// WithRotateSpeed scales pointer and touch orbiting.
//
// Parameters:
//   - speed: rotation multiplier
//
// Returns:
//   - OrbitControllerOption: a function that sets the rotate speed
func WithRotateSpeed(speed float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.RotateSpeed = speed
	}
}

// WithZoomSpeed scales the dolly step; each step multiplies by 0.95^speed.
//
// Parameters:
//   - speed: zoom multiplier
//
// Returns:
//   - OrbitControllerOption: a function that sets the zoom speed
func WithZoomSpeed(speed float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.ZoomSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans.
//
// Parameters:
//   - speed: pixels per key press
//
// Returns:
//   - OrbitControllerOption: a function that sets the key pan speed
func WithKeyPanSpeed(speed float64) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.KeyPanSpeed = speed
	}
}

// WithZoomEnabled toggles dollying.
func WithZoomEnabled(enabled bool) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.EnableZoom = enabled
	}
}

// WithRotateEnabled toggles orbiting.
func WithRotateEnabled(enabled bool) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.EnableRotate = enabled
	}
}

// WithPanEnabled toggles panning.
func WithPanEnabled(enabled bool) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.EnablePan = enabled
	}
}

// WithKeysEnabled toggles the arrow-key pan bindings.
func WithKeysEnabled(enabled bool) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.EnableKeys = enabled
	}
}

// WithKeyBindings replaces the pan key codes.
//
// Parameters:
//   - keys: key codes for the four pan directions
//
// Returns:
//   - OrbitControllerOption: a function that sets the key bindings
func WithKeyBindings(keys KeyBindings) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Keys = keys
	}
}

// WithMouseButtons replaces the gesture button mapping.
//
// Parameters:
//   - orbit, zoom, pan: the buttons for each gesture
//
// Returns:
//   - OrbitControllerOption: a function that sets the button bindings
func WithMouseButtons(orbit, zoom, pan input.MouseButton) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.MouseButtons = ButtonBindings{Orbit: orbit, Zoom: zoom, Pan: pan}
	}
}

// WithLogger routes warnings to logger instead of the standard logger.
// Place it first so the other options log through it too.
//
// Parameters:
//   - logger: destination for warnings
//
// Returns:
//   - OrbitControllerOption: a function that sets the logger
func WithLogger(logger *log.Logger) OrbitControllerOption {
	return func(oc *OrbitController) {
		oc.Constraint.Logger = logger
	}
}
