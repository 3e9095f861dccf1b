// Package input defines the raw pointer, wheel, touch and keyboard events an input surface
// delivers, and a Dispatcher that fans them out to registered listeners.
package input

// MouseButton identifies a pointer button independently of the platform numbering.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// String returns the lowercase button name used in settings files.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseMouseButton maps a button name ("left", "middle", "right") to a MouseButton.
//
// Parameters:
//   - name: the lowercase button name
//
// Returns:
//   - MouseButton: the parsed button
//   - bool: false if the name is not recognized
func ParseMouseButton(name string) (MouseButton, bool) {
	switch name {
	case "left":
		return MouseButtonLeft, true
	case "middle":
		return MouseButtonMiddle, true
	case "right":
		return MouseButtonRight, true
	default:
		return 0, false
	}
}

// Event carries the default-action flags shared by every input event.
// Sources that map onto a platform with default behavior (scrolling, context menus)
// check DefaultPrevented after dispatch; desktop sources may ignore it.
type Event struct {
	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault asks the source to suppress the platform's default action for this event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation asks the source not to forward this event to outer handlers.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether a listener called StopPropagation.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// PointerEvent is a mouse press, move or release in client coordinates.
type PointerEvent struct {
	Event
	Button MouseButton
	X, Y   float64
}

// WheelEvent is a single scroll step.
// Positive DeltaY means the wheel was scrolled up (away from the user).
type WheelEvent struct {
	Event
	DeltaY float64
}

// KeyEvent is a key press delivered with a GLFW-numbered key code (see common key codes).
type KeyEvent struct {
	Event
	Code uint32
}

// TouchPoint is one active finger in page coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// TouchEvent lists every finger still on the surface at the time of the event.
// For touch-end events Touches holds the fingers that remain.
type TouchEvent struct {
	Event
	Touches []TouchPoint
}

// ContextMenuEvent is the platform request to open a context menu.
type ContextMenuEvent struct {
	Event
}
