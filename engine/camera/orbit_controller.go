package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// State is the interaction the controller is currently tracking. States are mutually exclusive.
type State int

const (
	StateNone State = iota
	StateRotate
	StateDolly
	StatePan
	StateTouchRotate
	StateTouchDolly
	StateTouchPan
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRotate:
		return "rotate"
	case StateDolly:
		return "dolly"
	case StatePan:
		return "pan"
	case StateTouchRotate:
		return "touch-rotate"
	case StateTouchDolly:
		return "touch-dolly"
	case StateTouchPan:
		return "touch-pan"
	default:
		return "unknown"
	}
}

// KeyBindings maps the four pan directions to key codes.
type KeyBindings struct {
	Left, Up, Right, Bottom uint32
}

// ButtonBindings maps the three pointer gestures to mouse buttons.
type ButtonBindings struct {
	Orbit, Zoom, Pan input.MouseButton
}

// OrbitController turns raw input from an input.Source into orbit, dolly and pan requests on
// its OrbitConstraint, and notifies listeners with start, change and end events.
//
//	Orbit - left mouse / one finger drag
//	Zoom  - middle mouse or wheel / two finger spread or pinch
//	Pan   - right mouse or arrow keys / three finger drag
//
// All configuration fields may be changed at any time. Limits and damping live on Constraint.
// An OrbitController is confined to the thread that delivers its input events and calls Update.
type OrbitController struct {
	// Constraint holds the target, limits and damping, and does the orbit math.
	Constraint *OrbitConstraint

	// Enabled gates every input handler.
	Enabled bool

	// EnableZoom enables dollying (wheel, middle drag, two finger pinch).
	EnableZoom bool
	ZoomSpeed  float64

	// EnableRotate enables orbiting (left drag, one finger drag).
	EnableRotate bool
	RotateSpeed  float64

	// EnablePan enables panning (right drag, arrow keys, three finger drag).
	EnablePan bool
	// KeyPanSpeed is the pan distance in pixels per arrow key press.
	KeyPanSpeed float64

	// AutoRotate orbits the target continuously while no gesture is active.
	AutoRotate bool
	// AutoRotateSpeed of 1 is one turn per 60 seconds at 60 updates per second.
	AutoRotateSpeed float64

	// EnableKeys enables the arrow-key pan bindings.
	EnableKeys bool

	Keys         KeyBindings
	MouseButtons ButtonBindings

	source    input.Source
	handles   []input.CallbackHandle
	listeners controlListeners

	state    State
	dragging bool
	disposed bool

	rotateStart mgl64.Vec2
	panStart    mgl64.Vec2
	dollyStart  mgl64.Vec2

	// Reset state recorded at construction.
	target0   mgl64.Vec3
	position0 mgl64.Vec3
	zoom0     float64
}

// NewOrbitController creates a controller for cam, attaches it to source and runs one Update.
// The camera position, target and orthographic zoom after options are applied are what Reset restores.
// A nil source gives a controller driven only through its Constraint and Update.
//
// Parameters:
//   - cam: the camera to drive
//   - source: the input surface to listen on, or nil
//   - options: functional options to configure the controller
//
// Returns:
//   - *OrbitController: the new controller
func NewOrbitController(cam Camera, source input.Source, options ...OrbitControllerOption) *OrbitController {
	oc := &OrbitController{
		Constraint:      NewOrbitConstraint(cam),
		Enabled:         true,
		EnableZoom:      true,
		ZoomSpeed:       1.0,
		EnableRotate:    true,
		RotateSpeed:     1.0,
		EnablePan:       true,
		KeyPanSpeed:     7.0,
		AutoRotate:      false,
		AutoRotateSpeed: 2.0,
		EnableKeys:      true,
		Keys: KeyBindings{
			Left:   common.KeyLeft,
			Up:     common.KeyUp,
			Right:  common.KeyRight,
			Bottom: common.KeyDown,
		},
		MouseButtons: ButtonBindings{
			Orbit: input.MouseButtonLeft,
			Zoom:  input.MouseButtonMiddle,
			Pan:   input.MouseButtonRight,
		},
		source: source,
	}

	for _, option := range options {
		option(oc)
	}
	if err := oc.Constraint.Limits.Validate(); err != nil {
		oc.Constraint.Logger.Printf("[OrbitController] WARNING: %v, using default limits", err)
		oc.Constraint.Limits = DefaultLimits()
	}

	oc.target0 = oc.Constraint.Target
	oc.position0 = cam.Position()
	if o, ok := cam.Projection().(Orthographic); ok {
		oc.zoom0 = o.Zoom
	}

	if source != nil {
		oc.handles = append(oc.handles,
			source.OnContextMenu(oc.onContextMenu),
			source.OnPointerDown(oc.onPointerDown),
			source.OnPointerMove(oc.onPointerMove),
			source.OnPointerUp(oc.onPointerUp),
			source.OnWheel(oc.onWheel),
			source.OnTouchStart(oc.onTouchStart),
			source.OnTouchMove(oc.onTouchMove),
			source.OnTouchEnd(oc.onTouchEnd),
			source.OnKeyDown(oc.onKeyDown),
		)
	}

	// force an update at start
	oc.Update()
	return oc
}

// Camera returns the camera this controller drives.
func (oc *OrbitController) Camera() Camera {
	return oc.Constraint.Camera()
}

// State returns the interaction currently in progress.
func (oc *OrbitController) State() State {
	return oc.state
}

// PolarAngle returns the angle from the up axis computed by the last Update, in radians.
func (oc *OrbitController) PolarAngle() float64 {
	return oc.Constraint.PolarAngle()
}

// AzimuthalAngle returns the angle around the up axis computed by the last Update, in radians.
func (oc *OrbitController) AzimuthalAngle() float64 {
	return oc.Constraint.AzimuthalAngle()
}

// OnStart registers fn to run when a gesture starts.
//
// Parameters:
//   - fn: the listener
//
// Returns:
//   - ListenerHandle: handle that detaches the listener
func (oc *OrbitController) OnStart(fn func()) ListenerHandle {
	return oc.listeners.add(EventStart, fn)
}

// OnChange registers fn to run whenever the camera visibly changes.
//
// Parameters:
//   - fn: the listener
//
// Returns:
//   - ListenerHandle: handle that detaches the listener
func (oc *OrbitController) OnChange(fn func()) ListenerHandle {
	return oc.listeners.add(EventChange, fn)
}

// OnEnd registers fn to run when a gesture ends.
//
// Parameters:
//   - fn: the listener
//
// Returns:
//   - ListenerHandle: handle that detaches the listener
func (oc *OrbitController) OnEnd(fn func()) ListenerHandle {
	return oc.listeners.add(EventEnd, fn)
}

// Update applies auto-rotation when idle, runs the constraint and fires EventChange if the camera
// visibly moved. Call it once per frame; it must keep running while damping or auto-rotation is active.
//
// Returns:
//   - bool: true if a change was reported
func (oc *OrbitController) Update() bool {
	if oc.AutoRotate && oc.state == StateNone {
		oc.Constraint.RotateLeft(oc.autoRotationAngle())
	}
	if oc.Constraint.Update() {
		oc.listeners.dispatch(EventChange)
		return true
	}
	return false
}

// Reset restores the camera position, target and orthographic zoom recorded at construction,
// fires EventChange and runs one Update.
func (oc *OrbitController) Reset() {
	oc.state = StateNone
	oc.dragging = false

	cam := oc.Constraint.Camera()
	oc.Constraint.Target = oc.target0
	cam.SetPosition(oc.position0)
	if o, ok := cam.Projection().(Orthographic); ok {
		o.Zoom = oc.zoom0
		cam.SetProjection(o)
	}
	cam.RecomputeProjection()

	oc.listeners.dispatch(EventChange)
	oc.Update()
}

// Dispose detaches every input listener. The controller ignores input afterwards, while Update
// keeps working so in-flight damping can settle. Calling Dispose again does nothing.
func (oc *OrbitController) Dispose() {
	if oc.disposed {
		return
	}
	for _, h := range oc.handles {
		h.Remove()
	}
	oc.handles = nil
	oc.disposed = true
	oc.dragging = false
	oc.state = StateNone
}

// Disposed reports whether Dispose has been called.
func (oc *OrbitController) Disposed() bool {
	return oc.disposed
}

func (oc *OrbitController) autoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * oc.AutoRotateSpeed
}

func (oc *OrbitController) zoomScale() float64 {
	return math.Pow(0.95, oc.ZoomSpeed)
}

func (oc *OrbitController) clientSize() (float64, float64) {
	if oc.source == nil {
		return 0, 0
	}
	w, h := oc.source.ClientSize()
	return float64(w), float64(h)
}

// pan takes x,y of change desired in pixel space, right and down are positive.
func (oc *OrbitController) pan(deltaX, deltaY float64) {
	w, h := oc.clientSize()
	if w <= 0 || h <= 0 {
		return
	}
	oc.Constraint.Pan(deltaX, deltaY, w, h)
}

// rotateBy converts a pixel drag into an orbit: a drag across the full width is one full turn,
// and a drag across the full height attempts one too but is limited by the polar clamp.
// A zero-sized surface (minimized window) ignores the drag.
func (oc *OrbitController) rotateBy(delta mgl64.Vec2) {
	w, h := oc.clientSize()
	if w <= 0 || h <= 0 {
		return
	}
	oc.Constraint.RotateLeft(2 * math.Pi * delta.X() / w * oc.RotateSpeed)
	oc.Constraint.RotateUp(2 * math.Pi * delta.Y() / h * oc.RotateSpeed)
}

func (oc *OrbitController) active() bool {
	return oc.Enabled && !oc.disposed
}

func (oc *OrbitController) onContextMenu(e *input.ContextMenuEvent) {
	e.PreventDefault()
}

func (oc *OrbitController) onPointerDown(e *input.PointerEvent) {
	if !oc.active() {
		return
	}
	e.PreventDefault()

	switch e.Button {
	case oc.MouseButtons.Orbit:
		if !oc.EnableRotate {
			return
		}
		oc.state = StateRotate
		oc.rotateStart = mgl64.Vec2{e.X, e.Y}
	case oc.MouseButtons.Zoom:
		if !oc.EnableZoom {
			return
		}
		oc.state = StateDolly
		oc.dollyStart = mgl64.Vec2{e.X, e.Y}
	case oc.MouseButtons.Pan:
		if !oc.EnablePan {
			return
		}
		oc.state = StatePan
		oc.panStart = mgl64.Vec2{e.X, e.Y}
	}

	if oc.state != StateNone {
		oc.dragging = true
		oc.listeners.dispatch(EventStart)
	}
}

func (oc *OrbitController) onPointerMove(e *input.PointerEvent) {
	if !oc.active() || !oc.dragging {
		return
	}
	e.PreventDefault()

	end := mgl64.Vec2{e.X, e.Y}
	switch oc.state {
	case StateRotate:
		if !oc.EnableRotate {
			return
		}
		oc.rotateBy(end.Sub(oc.rotateStart))
		oc.rotateStart = end
	case StateDolly:
		if !oc.EnableZoom {
			return
		}
		delta := end.Sub(oc.dollyStart)
		if delta.Y() > 0 {
			oc.Constraint.DollyIn(oc.zoomScale())
		} else if delta.Y() < 0 {
			oc.Constraint.DollyOut(oc.zoomScale())
		}
		oc.dollyStart = end
	case StatePan:
		if !oc.EnablePan {
			return
		}
		delta := end.Sub(oc.panStart)
		oc.pan(delta.X(), delta.Y())
		oc.panStart = end
	}

	if oc.state != StateNone {
		oc.Update()
	}
}

func (oc *OrbitController) onPointerUp(e *input.PointerEvent) {
	if !oc.active() || !oc.dragging {
		return
	}
	oc.dragging = false
	oc.listeners.dispatch(EventEnd)
	oc.state = StateNone
}

// onWheel treats every wheel step as a complete gesture: start and end fire back to back.
func (oc *OrbitController) onWheel(e *input.WheelEvent) {
	if !oc.active() || !oc.EnableZoom || oc.state != StateNone {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	if e.DeltaY > 0 {
		oc.Constraint.DollyOut(oc.zoomScale())
	} else if e.DeltaY < 0 {
		oc.Constraint.DollyIn(oc.zoomScale())
	}

	oc.Update()
	oc.listeners.dispatch(EventStart)
	oc.listeners.dispatch(EventEnd)
}

func (oc *OrbitController) onKeyDown(e *input.KeyEvent) {
	if !oc.active() || !oc.EnableKeys || !oc.EnablePan {
		return
	}

	switch e.Code {
	case oc.Keys.Up:
		oc.pan(0, oc.KeyPanSpeed)
		oc.Update()
	case oc.Keys.Bottom:
		oc.pan(0, -oc.KeyPanSpeed)
		oc.Update()
	case oc.Keys.Left:
		oc.pan(oc.KeyPanSpeed, 0)
		oc.Update()
	case oc.Keys.Right:
		oc.pan(-oc.KeyPanSpeed, 0)
		oc.Update()
	}
}

func touchDistance(touches []input.TouchPoint) float64 {
	dx := touches[0].X - touches[1].X
	dy := touches[0].Y - touches[1].Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (oc *OrbitController) onTouchStart(e *input.TouchEvent) {
	if !oc.active() {
		return
	}

	switch len(e.Touches) {
	case 1: // one-fingered touch: rotate
		if !oc.EnableRotate {
			return
		}
		oc.state = StateTouchRotate
		oc.rotateStart = mgl64.Vec2{e.Touches[0].X, e.Touches[0].Y}
	case 2: // two-fingered touch: dolly
		if !oc.EnableZoom {
			return
		}
		oc.state = StateTouchDolly
		oc.dollyStart = mgl64.Vec2{0, touchDistance(e.Touches)}
	case 3: // three-fingered touch: pan
		if !oc.EnablePan {
			return
		}
		oc.state = StateTouchPan
		oc.panStart = mgl64.Vec2{e.Touches[0].X, e.Touches[0].Y}
	default:
		oc.state = StateNone
	}

	if oc.state != StateNone {
		oc.listeners.dispatch(EventStart)
	}
}

func (oc *OrbitController) onTouchMove(e *input.TouchEvent) {
	if !oc.active() {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	switch len(e.Touches) {
	case 1:
		if !oc.EnableRotate || oc.state != StateTouchRotate {
			return
		}
		end := mgl64.Vec2{e.Touches[0].X, e.Touches[0].Y}
		oc.rotateBy(end.Sub(oc.rotateStart))
		oc.rotateStart = end
		oc.Update()
	case 2:
		if !oc.EnableZoom || oc.state != StateTouchDolly {
			return
		}
		end := mgl64.Vec2{0, touchDistance(e.Touches)}
		delta := end.Sub(oc.dollyStart)
		// spreading the fingers zooms in
		if delta.Y() > 0 {
			oc.Constraint.DollyOut(oc.zoomScale())
		} else if delta.Y() < 0 {
			oc.Constraint.DollyIn(oc.zoomScale())
		}
		oc.dollyStart = end
		oc.Update()
	case 3:
		if !oc.EnablePan || oc.state != StateTouchPan {
			return
		}
		end := mgl64.Vec2{e.Touches[0].X, e.Touches[0].Y}
		delta := end.Sub(oc.panStart)
		oc.pan(delta.X(), delta.Y())
		oc.panStart = end
		oc.Update()
	default:
		oc.state = StateNone
	}
}

func (oc *OrbitController) onTouchEnd(e *input.TouchEvent) {
	if !oc.active() {
		return
	}
	oc.listeners.dispatch(EventEnd)
	oc.state = StateNone
}
