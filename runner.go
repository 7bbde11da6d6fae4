package timingwheel

import (
	"sync"
	"sync/atomic"
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// Runner drives a Wheel from the wall clock, advancing it once per
// TickDuration and passing every fired payload to its Handler.
//
// All methods are safe for concurrent use. Handlers run one at a time, in
// firing order, on the goroutine that advanced the wheel.
type Runner[T any] struct {
	Options // inherited options
	handler Handler[T]
	wheel   *Wheel[T]
	limiter *catrate.Limiter
	mu      sync.Mutex // guards wheel

	lifecycle sync.Mutex
	started   bool
	stopped   atomic.Bool
	stopCh    chan struct{}
}

// NewRunner creates a runner dispatching to handler. A nil handler logs each
// payload at info level instead.
func NewRunner[T any](handler Handler[T], opts ...Option) *Runner[T] {
	r := &Runner[T]{
		Options: NewOptions(opts...),
		handler: handler,
		stopCh:  make(chan struct{}),
	}
	if r.handler == nil {
		r.handler = loggingHandler[T](r.Logger)
	}
	r.wheel = Hierarchical[T](r.Levels, r.SlotCapacity, r.SlotsPerLevel)
	r.limiter = catrate.NewLimiter(map[time.Duration]int{
		time.Minute: r.PanicLogRate,
	})

	return r
}

// Start starts advancing the wheel in the background. It does nothing if
// the runner was already started or stopped.
func (r *Runner[T]) Start() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if r.started || r.stopped.Load() {
		return
	}
	r.started = true

	go r.run(time.NewTicker(r.TickDuration))
}

// Stop stops the runner, it may be called more than once. Timers still in
// the wheel remain there, and may be fired with Advance.
func (r *Runner[T]) Stop() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if r.stopped.Swap(true) {
		return
	}
	close(r.stopCh)
}

// Schedule adds a timer firing after delay, rounded up to whole ticks.
// Negative delays are treated as 0, firing on the next tick.
func (r *Runner[T]) Schedule(delay time.Duration, payload T) (Handle, error) {
	if r.stopped.Load() {
		return Handle{}, ErrStopped
	}

	ticks := r.ticks(delay)

	r.mu.Lock()
	h, err := r.wheel.Schedule(ticks, payload)
	now := r.wheel.now
	r.mu.Unlock()

	if err != nil {
		r.Logger.Warning().
			Err(err).
			Dur(`delay`, delay).
			Uint64(`tick`, now).
			Log(`timer rejected`)
		return Handle{}, err
	}

	r.Logger.Debug().
		Uint64(`tick`, now).
		Dur(`delay`, delay).
		Int(`level`, h.Level).
		Int(`slot`, h.Slot).
		Log(`timer scheduled`)

	return h, nil
}

// Advance moves the wheel forward by steps ticks and dispatches whatever
// fell due, returning the number of payloads dispatched. It works whether or
// not the runner is started, which allows driving it from a simulated clock.
func (r *Runner[T]) Advance(steps uint64) int {
	r.mu.Lock()
	fired := r.wheel.Tick(steps)
	now := r.wheel.now
	r.mu.Unlock()

	if len(fired) != 0 {
		r.Logger.Debug().
			Uint64(`tick`, now).
			Int(`fired`, len(fired)).
			Log(`timers fired`)
	}
	for _, payload := range fired {
		r.dispatch(payload)
	}

	return len(fired)
}

// Len returns the number of timers waiting to fire.
func (r *Runner[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wheel.Len()
}

// Now returns the wheel's current tick.
func (r *Runner[T]) Now() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wheel.Now()
}

// MaxDelay returns the exclusive upper bound on delays Schedule accepts.
func (r *Runner[T]) MaxDelay() time.Duration {
	ticks := r.wheel.MaxDelay()
	if ticks > uint64(1<<63-1)/uint64(r.TickDuration) {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(ticks) * r.TickDuration
}

// run advances the wheel by however many ticks elapsed since the last wake
// up, so a slow handler delays timers but never drops ticks.
func (r *Runner[T]) run(ticker *time.Ticker) {
	defer ticker.Stop()

	start := time.Now()
	var driven uint64
	for {
		select {
		case <-ticker.C:
			target := uint64(time.Since(start) / r.TickDuration)
			if target <= driven {
				continue
			}
			steps := target - driven
			driven = target
			if steps > 1 {
				r.Logger.Warning().
					Uint64(`steps`, steps).
					Log(`runner fell behind`)
			}
			r.Advance(steps)
		case <-r.stopCh:
			return
		}
	}
}

func (r *Runner[T]) dispatch(payload T) {
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := r.limiter.Allow(`handler panic`); ok {
				r.Logger.Err().
					Any(`panic`, rec).
					Log(`timer handler panicked`)
			}
		}
	}()
	r.handler.Handle(payload)
}

// ticks converts d to a tick count, rounding up.
func (r *Runner[T]) ticks(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	n := uint64(d / r.TickDuration)
	if d%r.TickDuration != 0 {
		n++
	}
	return n
}
