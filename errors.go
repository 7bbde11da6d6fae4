package timingwheel

import (
	"errors"
	"fmt"
)

var (
	// ErrTimerTooLarge is matched (via errors.Is) by the error Schedule returns
	// when the delay does not fit in the wheel.
	ErrTimerTooLarge = errors.New("timingwheel: timer too large")

	// ErrStopped is returned by Runner.Schedule once the runner was stopped.
	ErrStopped = errors.New("timingwheel: runner stopped")
)

// TimerTooLargeError reports a delay at or above the wheel's MaxDelay.
type TimerTooLargeError struct {
	Delay    uint64
	MaxDelay uint64
}

// Error implements the error interface.
func (e *TimerTooLargeError) Error() string {
	return fmt.Sprintf("timingwheel: timer too large: delay %d ticks, max delay %d ticks", e.Delay, e.MaxDelay)
}

// Is makes errors.Is(err, ErrTimerTooLarge) report true.
func (e *TimerTooLargeError) Is(target error) bool {
	return target == ErrTimerTooLarge
}
