package input

// Source is an input surface: it delivers raw pointer, wheel, touch and key events to registered
// listeners and reports its client size for pixel-to-world conversions.
// Every registration returns a CallbackHandle whose Remove detaches that listener.
type Source interface {
	// OnPointerDown registers fn for pointer button presses.
	//
	// Parameters:
	//   - fn: listener receiving the press
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnPointerDown(fn func(*PointerEvent)) CallbackHandle

	// OnPointerMove registers fn for pointer motion.
	//
	// Parameters:
	//   - fn: listener receiving the motion
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnPointerMove(fn func(*PointerEvent)) CallbackHandle

	// OnPointerUp registers fn for pointer button releases.
	//
	// Parameters:
	//   - fn: listener receiving the release
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnPointerUp(fn func(*PointerEvent)) CallbackHandle

	// OnWheel registers fn for scroll wheel steps.
	//
	// Parameters:
	//   - fn: listener receiving the wheel step
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnWheel(fn func(*WheelEvent)) CallbackHandle

	// OnKeyDown registers fn for global key presses.
	//
	// Parameters:
	//   - fn: listener receiving the key press
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnKeyDown(fn func(*KeyEvent)) CallbackHandle

	// OnTouchStart registers fn for fingers touching down.
	//
	// Parameters:
	//   - fn: listener receiving the touch list
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnTouchStart(fn func(*TouchEvent)) CallbackHandle

	// OnTouchMove registers fn for finger motion.
	//
	// Parameters:
	//   - fn: listener receiving the touch list
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnTouchMove(fn func(*TouchEvent)) CallbackHandle

	// OnTouchEnd registers fn for fingers lifting.
	//
	// Parameters:
	//   - fn: listener receiving the remaining touch list
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnTouchEnd(fn func(*TouchEvent)) CallbackHandle

	// OnContextMenu registers fn for context menu requests.
	//
	// Parameters:
	//   - fn: listener receiving the request
	//
	// Returns:
	//   - CallbackHandle: handle that detaches the listener
	OnContextMenu(fn func(*ContextMenuEvent)) CallbackHandle

	// ClientSize returns the current surface size in the same units as event coordinates.
	//
	// Returns:
	//   - width, height: surface size
	ClientSize() (width, height int)
}
