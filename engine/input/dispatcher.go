package input

// listenerEntry pairs a registered callback with the id its handle removes.
type listenerEntry[E any] struct {
	id uint32
	fn func(*E)
}

// listenerList holds the callbacks for one event kind in registration order.
// Removal never mutates the backing array in place, so a dispatch that is iterating
// the previous slice is unaffected by listeners detaching themselves mid-dispatch.
type listenerList[E any] struct {
	entries []listenerEntry[E]
}

func (l *listenerList[E]) add(id uint32, fn func(*E)) {
	l.entries = append(l.entries, listenerEntry[E]{id: id, fn: fn})
}

func (l *listenerList[E]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listenerList[E]) emit(e *E) {
	for _, entry := range l.entries {
		entry.fn(e)
	}
}

func (l *listenerList[E]) len() int {
	return len(l.entries)
}

// remover is implemented by every listenerList instantiation.
type remover interface {
	remove(id uint32)
}

// CallbackHandle detaches a listener registered on a Source.
// The zero value is valid and Remove on it does nothing.
type CallbackHandle struct {
	id   uint32
	list remover
}

// Remove unregisters the listener so it no longer fires. Calling it more than once is harmless.
func (h CallbackHandle) Remove() {
	if h.list == nil {
		return
	}
	h.list.remove(h.id)
}

// Dispatcher is a Source whose events are injected by the Emit methods.
// Platform backends (GLFW window, ebiten poller) own one and translate native input into Emit calls;
// tests use it directly as an input surface with a fixed client size.
// A Dispatcher is not safe for concurrent use; emit from the thread that owns the listeners.
type Dispatcher struct {
	width, height int
	nextID        uint32

	pointerDown listenerList[PointerEvent]
	pointerMove listenerList[PointerEvent]
	pointerUp   listenerList[PointerEvent]
	wheel       listenerList[WheelEvent]
	keyDown     listenerList[KeyEvent]
	touchStart  listenerList[TouchEvent]
	touchMove   listenerList[TouchEvent]
	touchEnd    listenerList[TouchEvent]
	contextMenu listenerList[ContextMenuEvent]
}

var _ Source = &Dispatcher{}

// NewDispatcher creates a Dispatcher reporting the given client size.
//
// Parameters:
//   - width, height: initial client size
//
// Returns:
//   - *Dispatcher: the new dispatcher
func NewDispatcher(width, height int) *Dispatcher {
	return &Dispatcher{width: width, height: height}
}

// register adds fn to list under a fresh id and returns its handle.
func register[E any](d *Dispatcher, list *listenerList[E], fn func(*E)) CallbackHandle {
	d.nextID++
	list.add(d.nextID, fn)
	return CallbackHandle{id: d.nextID, list: list}
}

func (d *Dispatcher) OnPointerDown(fn func(*PointerEvent)) CallbackHandle {
	return register(d, &d.pointerDown, fn)
}

func (d *Dispatcher) OnPointerMove(fn func(*PointerEvent)) CallbackHandle {
	return register(d, &d.pointerMove, fn)
}

func (d *Dispatcher) OnPointerUp(fn func(*PointerEvent)) CallbackHandle {
	return register(d, &d.pointerUp, fn)
}

func (d *Dispatcher) OnWheel(fn func(*WheelEvent)) CallbackHandle {
	return register(d, &d.wheel, fn)
}

func (d *Dispatcher) OnKeyDown(fn func(*KeyEvent)) CallbackHandle {
	return register(d, &d.keyDown, fn)
}

func (d *Dispatcher) OnTouchStart(fn func(*TouchEvent)) CallbackHandle {
	return register(d, &d.touchStart, fn)
}

func (d *Dispatcher) OnTouchMove(fn func(*TouchEvent)) CallbackHandle {
	return register(d, &d.touchMove, fn)
}

func (d *Dispatcher) OnTouchEnd(fn func(*TouchEvent)) CallbackHandle {
	return register(d, &d.touchEnd, fn)
}

func (d *Dispatcher) OnContextMenu(fn func(*ContextMenuEvent)) CallbackHandle {
	return register(d, &d.contextMenu, fn)
}

func (d *Dispatcher) ClientSize() (width, height int) {
	return d.width, d.height
}

// SetClientSize updates the size reported by ClientSize, typically from a resize callback.
//
// Parameters:
//   - width, height: new client size
func (d *Dispatcher) SetClientSize(width, height int) {
	d.width = width
	d.height = height
}

// ListenerCount returns the total number of attached listeners across all event kinds.
//
// Returns:
//   - int: number of live registrations
func (d *Dispatcher) ListenerCount() int {
	return d.pointerDown.len() + d.pointerMove.len() + d.pointerUp.len() +
		d.wheel.len() + d.keyDown.len() +
		d.touchStart.len() + d.touchMove.len() + d.touchEnd.len() +
		d.contextMenu.len()
}

// EmitPointerDown delivers a pointer press to every listener and returns the event for flag inspection.
func (d *Dispatcher) EmitPointerDown(button MouseButton, x, y float64) *PointerEvent {
	e := &PointerEvent{Button: button, X: x, Y: y}
	d.pointerDown.emit(e)
	return e
}

// EmitPointerMove delivers pointer motion.
func (d *Dispatcher) EmitPointerMove(x, y float64) *PointerEvent {
	e := &PointerEvent{X: x, Y: y}
	d.pointerMove.emit(e)
	return e
}

// EmitPointerUp delivers a pointer release.
func (d *Dispatcher) EmitPointerUp(button MouseButton, x, y float64) *PointerEvent {
	e := &PointerEvent{Button: button, X: x, Y: y}
	d.pointerUp.emit(e)
	return e
}

// EmitWheel delivers one scroll step; positive deltaY is scroll up.
func (d *Dispatcher) EmitWheel(deltaY float64) *WheelEvent {
	e := &WheelEvent{DeltaY: deltaY}
	d.wheel.emit(e)
	return e
}

// EmitKeyDown delivers a key press.
func (d *Dispatcher) EmitKeyDown(code uint32) *KeyEvent {
	e := &KeyEvent{Code: code}
	d.keyDown.emit(e)
	return e
}

// EmitTouchStart delivers a touch-start with every finger currently down.
func (d *Dispatcher) EmitTouchStart(touches ...TouchPoint) *TouchEvent {
	e := &TouchEvent{Touches: touches}
	d.touchStart.emit(e)
	return e
}

// EmitTouchMove delivers finger motion with every finger currently down.
func (d *Dispatcher) EmitTouchMove(touches ...TouchPoint) *TouchEvent {
	e := &TouchEvent{Touches: touches}
	d.touchMove.emit(e)
	return e
}

// EmitTouchEnd delivers a touch-end with the fingers that remain down.
func (d *Dispatcher) EmitTouchEnd(touches ...TouchPoint) *TouchEvent {
	e := &TouchEvent{Touches: touches}
	d.touchEnd.emit(e)
	return e
}

// EmitContextMenu delivers a context menu request.
func (d *Dispatcher) EmitContextMenu() *ContextMenuEvent {
	e := &ContextMenuEvent{}
	d.contextMenu.emit(e)
	return e
}
