// Package ebitensource adapts ebiten's polled input state into the event stream of an input.Source.
// Call Poll once per ebiten Update and report the layout size through SetClientSize.
package ebitensource

import (
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// keyRepeatDelay is the number of ticks a key must be held before it starts repeating.
	keyRepeatDelay = 30
	// keyRepeatInterval is the number of ticks between repeats once a key repeats.
	keyRepeatInterval = 3
)

var buttons = [...]struct {
	ebiten ebiten.MouseButton
	button input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, input.MouseButtonMiddle},
	{ebiten.MouseButtonRight, input.MouseButtonRight},
}

// DefaultKeyMap maps ebiten keys onto the key codes the rest of the engine uses.
func DefaultKeyMap() map[ebiten.Key]uint32 {
	return map[ebiten.Key]uint32{
		ebiten.KeyArrowLeft:  common.KeyLeft,
		ebiten.KeyArrowUp:    common.KeyUp,
		ebiten.KeyArrowRight: common.KeyRight,
		ebiten.KeyArrowDown:  common.KeyDown,
		ebiten.KeyR:          common.KeyR,
		ebiten.KeySpace:      common.KeySpace,
		ebiten.KeyEscape:     common.KeyEsc,
	}
}

// Frame is one tick of raw input state.
type Frame struct {
	CursorX, CursorY float64
	// Buttons is indexed by input.MouseButton.
	Buttons [3]bool
	// WheelY is the vertical scroll this tick; positive scrolls up.
	WheelY float64
	// Keys are the key codes that pressed or auto-repeated this tick.
	Keys []uint32
	// Touches are the active touch points in the order ebiten reports them.
	Touches []input.TouchPoint
}

// Poller is an input.Source backed by ebiten. It diffs consecutive frames into
// pointer, wheel, key and touch events.
type Poller struct {
	*input.Dispatcher

	keyMap map[ebiten.Key]uint32
	// keyOrder lists keyMap's keys in ascending order so same-tick presses emit deterministically.
	keyOrder []ebiten.Key

	prev        Frame
	initialized bool

	touchIDs []ebiten.TouchID
	keys     []uint32
}

var _ input.Source = &Poller{}

// NewPoller creates a Poller with the default key map.
//
// Parameters:
//   - width, height: initial client size, normally the ebiten layout size
//
// Returns:
//   - *Poller: the new poller
func NewPoller(width, height int) *Poller {
	p := &Poller{
		Dispatcher: input.NewDispatcher(width, height),
	}
	p.SetKeyMap(DefaultKeyMap())
	return p
}

// SetKeyMap replaces the key translation table.
//
// Parameters:
//   - keyMap: ebiten key to engine key code
func (p *Poller) SetKeyMap(keyMap map[ebiten.Key]uint32) {
	p.keyMap = keyMap
	p.keyOrder = sortedKeys(keyMap)
}

func sortedKeys(keyMap map[ebiten.Key]uint32) []ebiten.Key {
	return slices.Sorted(maps.Keys(keyMap))
}

// Poll reads ebiten's current input state and emits the resulting events.
func (p *Poller) Poll() {
	p.Apply(p.readFrame())
}

func (p *Poller) readFrame() Frame {
	var f Frame

	cx, cy := ebiten.CursorPosition()
	f.CursorX, f.CursorY = float64(cx), float64(cy)

	for _, b := range buttons {
		f.Buttons[b.button] = ebiten.IsMouseButtonPressed(b.ebiten)
	}

	_, f.WheelY = ebiten.Wheel()

	p.keys = p.keys[:0]
	for _, k := range p.keyOrder {
		if repeatingKeyPressed(k) {
			p.keys = append(p.keys, p.keyMap[k])
		}
	}
	f.Keys = p.keys

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	f.Touches = make([]input.TouchPoint, 0, len(p.touchIDs))
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		f.Touches = append(f.Touches, input.TouchPoint{ID: int(id), X: float64(x), Y: float64(y)})
	}
	return f
}

func repeatingKeyPressed(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// Apply emits the events that turn the previous frame into f: button presses, cursor movement,
// button releases, wheel, keys, then touch start, move and end.
//
// Parameters:
//   - f: the input state for this tick
func (p *Poller) Apply(f Frame) {
	if !p.initialized {
		p.prev.CursorX, p.prev.CursorY = f.CursorX, f.CursorY
		p.initialized = true
	}

	for i, down := range f.Buttons {
		if down && !p.prev.Buttons[i] {
			b := input.MouseButton(i)
			p.EmitPointerDown(b, f.CursorX, f.CursorY)
			if b == input.MouseButtonRight {
				p.EmitContextMenu()
			}
		}
	}

	if f.CursorX != p.prev.CursorX || f.CursorY != p.prev.CursorY {
		p.EmitPointerMove(f.CursorX, f.CursorY)
	}

	for i, down := range f.Buttons {
		if !down && p.prev.Buttons[i] {
			p.EmitPointerUp(input.MouseButton(i), f.CursorX, f.CursorY)
		}
	}

	if f.WheelY != 0 {
		p.EmitWheel(f.WheelY)
	}

	for _, code := range f.Keys {
		p.EmitKeyDown(code)
	}

	p.applyTouches(f.Touches)

	p.prev.CursorX, p.prev.CursorY = f.CursorX, f.CursorY
	p.prev.Buttons = f.Buttons
	p.prev.Touches = append(p.prev.Touches[:0], f.Touches...)
}

// applyTouches reports new fingers as touch start, moved fingers as touch move and lifted
// fingers as touch end. Every event carries the full set of touches still down.
func (p *Poller) applyTouches(touches []input.TouchPoint) {
	started := false
	moved := false
	for _, t := range touches {
		old, ok := findTouch(p.prev.Touches, t.ID)
		switch {
		case !ok:
			started = true
		case old.X != t.X || old.Y != t.Y:
			moved = true
		}
	}

	ended := false
	for _, old := range p.prev.Touches {
		if _, ok := findTouch(touches, old.ID); !ok {
			ended = true
			break
		}
	}

	if ended {
		p.EmitTouchEnd(touches...)
	}
	if started {
		p.EmitTouchStart(touches...)
	}
	if moved && !started {
		p.EmitTouchMove(touches...)
	}
}

func findTouch(touches []input.TouchPoint, id int) (input.TouchPoint, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return input.TouchPoint{}, false
}
