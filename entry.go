package timingwheel

// entry is the record a slot holds for one scheduled timer.
type entry[T any] struct {
	deadline uint64 // absolute tick at which the timer fires
	seq      uint64 // insertion order, used to keep ties in scheduling order
	payload  T
}

// Handle locates the slot a timer was placed into when it was scheduled.
// It is informational only, the timer may later be moved by a cascade.
type Handle struct {
	Level int
	Slot  int
}
