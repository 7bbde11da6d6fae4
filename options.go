package timingwheel

import (
	"time"
)

// default is a 3 level wheel with 60 slots per level and a 1 second tick,
// which covers a delay of up to 60^3 seconds (60 hours).
const (
	defaultLevels        = 3
	defaultSlotsPerLevel = 60
	defaultSlotCapacity  = 16
	defaultTickDuration  = 1 * time.Second
	defaultPanicLogRate  = 5
)

// Options is common options
type Options struct {
	Logger        *Logger
	Levels        int
	SlotsPerLevel int
	SlotCapacity  int
	TickDuration  time.Duration
	// PanicLogRate is the number of handler panics logged per minute, the
	// rest are dropped.
	PanicLogRate int
}

// NewOptions creates options with defaults.
func NewOptions(opts ...Option) Options {
	var options = Options{
		Levels:        defaultLevels,
		SlotsPerLevel: defaultSlotsPerLevel,
		SlotCapacity:  defaultSlotCapacity,
		TickDuration:  defaultTickDuration,
		PanicLogRate:  defaultPanicLogRate,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return options
}

// Option is for setting options.
type Option func(*Options)

// WithLogger sets logger, nil disables logging.
func WithLogger(logger *Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithLevels sets the number of wheel levels, must be greater than 0.
// If not, it will be ignored.
func WithLevels(num int) Option {
	return func(o *Options) {
		if num > 0 {
			o.Levels = num
		}
	}
}

// WithSlotsPerLevel sets the number of slots in each level, must be greater
// than 1. If not, it will be ignored.
func WithSlotsPerLevel(num int) Option {
	return func(o *Options) {
		if num > 1 {
			o.SlotsPerLevel = num
		}
	}
}

// WithSlotCapacity sets the initial capacity of each slot, must not be
// negative. If it is, it will be ignored.
func WithSlotCapacity(num int) Option {
	return func(o *Options) {
		if num >= 0 {
			o.SlotCapacity = num
		}
	}
}

// WithTickDuration sets tick duration, must be greater than 0.
// If not, it will be ignored.
func WithTickDuration(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.TickDuration = d
		}
	}
}

// WithPanicLogRate sets how many handler panics are logged per minute, must
// be greater than 0. If not, it will be ignored.
func WithPanicLogRate(num int) Option {
	return func(o *Options) {
		if num > 0 {
			o.PanicLogRate = num
		}
	}
}
