package camera

// ControlEvent names the three notifications an OrbitController emits.
type ControlEvent int

const (
	// EventStart fires when a drag, touch gesture or wheel step begins.
	EventStart ControlEvent = iota
	// EventChange fires when Update reports a visible camera change, and unconditionally on Reset.
	EventChange
	// EventEnd fires when a drag or touch gesture ends, and right after EventStart for a wheel step.
	EventEnd
)

func (e ControlEvent) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventChange:
		return "change"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

type controlListener struct {
	id    uint32
	event ControlEvent
	fn    func()
}

// controlListeners is a registration-ordered listener list. Removal rebuilds the slice
// so an in-progress dispatch keeps iterating the old one.
type controlListeners struct {
	nextID  uint32
	entries []controlListener
}

func (l *controlListeners) add(event ControlEvent, fn func()) ListenerHandle {
	l.nextID++
	l.entries = append(l.entries, controlListener{id: l.nextID, event: event, fn: fn})
	return ListenerHandle{id: l.nextID, owner: l}
}

func (l *controlListeners) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *controlListeners) dispatch(event ControlEvent) {
	for _, entry := range l.entries {
		if entry.event == event {
			entry.fn()
		}
	}
}

// ListenerHandle detaches a listener registered on an OrbitController.
// The zero value is valid and Remove on it does nothing.
type ListenerHandle struct {
	id    uint32
	owner *controlListeners
}

// Remove unregisters the listener. Calling it more than once is harmless.
func (h ListenerHandle) Remove() {
	if h.owner == nil {
		return
	}
	h.owner.remove(h.id)
}
