package timingwheel

// level is one ring of slots. One slot covers granularity base ticks and one
// full rotation covers span base ticks.
type level[T any] struct {
	slots       []slot[T]
	cursor      int
	granularity uint64
	span        uint64
}

func newLevel[T any](slotsPerLevel, slotCapacity int, granularity, span uint64) *level[T] {
	l := &level[T]{
		slots:       make([]slot[T], slotsPerLevel),
		granularity: granularity,
		span:        span,
	}
	for i := range l.slots {
		l.slots[i] = newSlot[T](slotCapacity)
	}
	return l
}

func (l *level[T]) slotIndex(deadline uint64) int {
	return int((deadline / l.granularity) % uint64(len(l.slots)))
}

// advance moves the cursor one slot forward and reports whether it wrapped
// back to slot 0.
func (l *level[T]) advance() bool {
	l.cursor++
	if l.cursor == len(l.slots) {
		l.cursor = 0
		return true
	}
	return false
}

func (l *level[T]) slotAt(i int) *slot[T] {
	return &l.slots[i]
}
