// Package timingwheel implements a hierarchical timing wheel over a logical
// tick counter, plus a Runner that drives one from the wall clock.
package timingwheel

import (
	"cmp"
	"math"
	"math/bits"

	"golang.org/x/exp/slices"
)

// Wheel is a hierarchical timing wheel driven by a logical tick counter.
//
// Level 0 has a granularity of one tick, and each level above it is
// slotsPerLevel times coarser. Timers are placed at the finest level whose
// rotation still reaches their deadline, and are moved down a level each time
// the level below completes a rotation, the same way a carry ripples through a
// mixed-radix counter.
//
// A Wheel is not safe for concurrent use, see Runner for a synchronized,
// clock-driven wrapper.
type Wheel[T any] struct {
	levels   []*level[T]
	now      uint64
	seq      uint64
	size     int
	maxDelay uint64
	scratch  []entry[T]
}

// Hierarchical creates a wheel with the given number of levels, each holding
// slotsPerLevel slots. Every slot is preallocated to hold slotCapacity
// timers, and grows past that as needed.
//
// It panics if levels < 1, slotsPerLevel < 2 or slotCapacity < 0.
func Hierarchical[T any](levels, slotCapacity, slotsPerLevel int) *Wheel[T] {
	if levels < 1 {
		panic("timingwheel: levels must be at least 1")
	}
	if slotsPerLevel < 2 {
		panic("timingwheel: slots per level must be at least 2")
	}
	if slotCapacity < 0 {
		panic("timingwheel: slot capacity must not be negative")
	}

	w := &Wheel[T]{
		levels: make([]*level[T], levels),
	}
	granularity := uint64(1)
	for i := range w.levels {
		span := mulSaturating(granularity, uint64(slotsPerLevel))
		w.levels[i] = newLevel[T](slotsPerLevel, slotCapacity, granularity, span)
		granularity = span
	}
	w.maxDelay = w.levels[levels-1].span

	return w
}

// Schedule adds a timer firing delay ticks from now, carrying payload.
// A delay of 0 fires on the next tick, same as a delay of 1.
//
// The returned error matches ErrTimerTooLarge if delay >= MaxDelay, in which
// case the wheel is left untouched.
func (w *Wheel[T]) Schedule(delay uint64, payload T) (Handle, error) {
	if delay >= w.maxDelay {
		return Handle{}, &TimerTooLargeError{Delay: delay, MaxDelay: w.maxDelay}
	}
	if delay == 0 {
		delay = 1
	}
	if delay > math.MaxUint64-w.now {
		panic("timingwheel: tick counter overflow")
	}

	w.seq++
	h := w.place(entry[T]{deadline: w.now + delay, seq: w.seq, payload: payload})
	w.size++

	return h, nil
}

// Tick advances the wheel by steps ticks, returning the payloads of every
// timer that fell due, in firing order. Timers due on the same tick are
// returned in the order they were scheduled.
//
// It panics if the tick counter would overflow.
func (w *Wheel[T]) Tick(steps uint64) []T {
	if steps > math.MaxUint64-w.now {
		panic("timingwheel: tick counter overflow")
	}

	var fired []T
	for ; steps > 0; steps-- {
		if w.size == 0 {
			w.fastForward(steps)
			break
		}
		w.now++
		if w.levels[0].advance() {
			w.cascade()
		}
		fired = w.fire(fired)
	}

	return fired
}

// Now returns the number of ticks the wheel has advanced since creation.
func (w *Wheel[T]) Now() uint64 { return w.now }

// Len returns the number of timers scheduled but not yet fired.
func (w *Wheel[T]) Len() int { return w.size }

// MaxDelay returns the exclusive upper bound on delays Schedule accepts,
// slotsPerLevel^levels, saturated at math.MaxUint64.
func (w *Wheel[T]) MaxDelay() uint64 { return w.maxDelay }

// Levels returns the number of levels.
func (w *Wheel[T]) Levels() int { return len(w.levels) }

// SlotsPerLevel returns the number of slots in each level.
func (w *Wheel[T]) SlotsPerLevel() int { return len(w.levels[0].slots) }

// place pushes e into the finest level whose span covers its remaining delay.
// The remaining delay is 0 only while cascading at e's deadline, which lands
// it in level 0's current slot, drained right after.
func (w *Wheel[T]) place(e entry[T]) Handle {
	delay := e.deadline - w.now
	i := 0
	for i < len(w.levels)-1 && delay >= w.levels[i].span {
		i++
	}
	l := w.levels[i]
	idx := l.slotIndex(e.deadline)
	l.slotAt(idx).push(e)
	return Handle{Level: i, Slot: idx}
}

// cascade carries a level 0 wrap upward, redistributing the slot each
// advanced level lands on.
func (w *Wheel[T]) cascade() {
	for _, l := range w.levels[1:] {
		wrapped := l.advance()
		w.scratch = l.slotAt(l.cursor).drain(w.scratch[:0])
		for _, e := range w.scratch {
			w.place(e)
		}
		clear(w.scratch)
		if !wrapped {
			return
		}
	}
}

// fire drains level 0's current slot, every entry of which is due now.
func (w *Wheel[T]) fire(fired []T) []T {
	l := w.levels[0]
	w.scratch = l.slotAt(l.cursor).drain(w.scratch[:0])
	if len(w.scratch) == 0 {
		return fired
	}
	// cascaded entries are appended after ones placed directly
	if !slices.IsSortedFunc(w.scratch, compareSeq[T]) {
		slices.SortFunc(w.scratch, compareSeq[T])
	}
	for _, e := range w.scratch {
		fired = append(fired, e.payload)
	}
	w.size -= len(w.scratch)
	clear(w.scratch)
	return fired
}

// fastForward moves an empty wheel ahead by steps, setting every cursor from
// the new tick count.
func (w *Wheel[T]) fastForward(steps uint64) {
	w.now += steps
	n := uint64(len(w.levels[0].slots))
	q := w.now
	for _, l := range w.levels {
		l.cursor = int(q % n)
		q /= n
	}
}

func compareSeq[T any](a, b entry[T]) int {
	return cmp.Compare(a.seq, b.seq)
}

func mulSaturating(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
