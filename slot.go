package timingwheel

// slot is a FIFO bucket of entries sharing one discrete time bucket.
type slot[T any] struct {
	entries []entry[T]
}

func newSlot[T any](capacity int) slot[T] {
	return slot[T]{entries: make([]entry[T], 0, capacity)}
}

func (s *slot[T]) push(e entry[T]) {
	s.entries = append(s.entries, e)
}

// drain appends every entry to dst in insertion order and empties the slot,
// keeping its backing array for reuse.
func (s *slot[T]) drain(dst []entry[T]) []entry[T] {
	if len(s.entries) == 0 {
		return dst
	}
	dst = append(dst, s.entries...)
	clear(s.entries) // drop payload references
	s.entries = s.entries[:0]
	return dst
}

func (s *slot[T]) len() int {
	return len(s.entries)
}
