// Package gesture turns a continuous horizontal drag into a discrete
// left/right swipe decision.
package gesture

import "time"

// Direction is the outcome of a completed swipe.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

const (
	// SwipeThreshold is the drag distance (in input coordinates) a
	// release must exceed to count as a swipe. Strictly greater-than:
	// exactly 100 is a non-swipe.
	SwipeThreshold = 100.0
	// Cooldown is the exit-animation window after an emission during
	// which the surface is not interactive.
	Cooldown = 300 * time.Millisecond
)

// Interpreter consumes pointer events for one card at a time and emits
// at most one direction per interaction cycle. It is not safe for
// concurrent use; one interpreter serves one session's event stream.
type Interpreter struct {
	now func() time.Time

	dragging      bool
	startX        float64
	offset        float64
	interactiveAt time.Time
}

// New returns an interpreter using the wall clock.
func New() *Interpreter {
	return NewWithClock(time.Now)
}

// NewWithClock returns an interpreter with an injected clock.
func NewWithClock(now func() time.Time) *Interpreter {
	return &Interpreter{now: now}
}

// Interactive reports whether the surface accepts new gestures, i.e.
// the post-emission cooldown has elapsed.
func (it *Interpreter) Interactive() bool {
	return !it.now().Before(it.interactiveAt)
}

// Offset is the current drag displacement. Purely presentational while
// dragging; its final value decides the swipe at release.
func (it *Interpreter) Offset() float64 {
	return it.offset
}

// Dragging reports whether a drag cycle is in progress.
func (it *Interpreter) Dragging() bool {
	return it.dragging
}

// Start begins a drag at the given x position. Ignored during cooldown.
func (it *Interpreter) Start(x float64) {
	if !it.Interactive() {
		return
	}
	it.startX = x
	it.offset = 0
	it.dragging = true
}

// Move updates the displacement. Ignored unless dragging.
func (it *Interpreter) Move(x float64) {
	if !it.dragging {
		return
	}
	it.offset = x - it.startX
}

// Release ends the drag. When the displacement exceeds the threshold a
// direction is emitted and the cooldown starts; otherwise the drag is
// discarded and the offset resets without an emission.
func (it *Interpreter) Release() (Direction, bool) {
	if !it.dragging {
		return "", false
	}
	it.dragging = false

	offset := it.offset
	it.offset = 0
	if offset > SwipeThreshold {
		it.beginCooldown()
		return Right, true
	}
	if offset < -SwipeThreshold {
		it.beginCooldown()
		return Left, true
	}
	return "", false
}

// Cancel aborts a drag in progress (pointer left the surface). The
// offset resets and nothing is emitted.
func (it *Interpreter) Cancel() {
	it.dragging = false
	it.offset = 0
}

// Press is the button-triggered path: the direction is emitted
// immediately, bypassing the threshold. Ignored during cooldown.
func (it *Interpreter) Press(dir Direction) (Direction, bool) {
	if !it.Interactive() {
		return "", false
	}
	it.dragging = false
	it.offset = 0
	it.beginCooldown()
	return dir, true
}

// InteractiveAt is the moment the surface becomes interactive again;
// the caller advances to the next card no earlier than this.
func (it *Interpreter) InteractiveAt() time.Time {
	return it.interactiveAt
}

func (it *Interpreter) beginCooldown() {
	it.interactiveAt = it.now().Add(Cooldown)
}
