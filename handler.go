package timingwheel

// Handler receives the payloads of fired timers.
type Handler[T any] interface {
	Handle(payload T)
}

// HandlerFunc is a function type that implements the Handler interface.
type HandlerFunc[T any] func(payload T)

// Handle calls f(payload).
func (f HandlerFunc[T]) Handle(payload T) {
	f(payload)
}

// NewHandlerFunc creates a Handler from a function.
func NewHandlerFunc[T any](f func(payload T)) Handler[T] {
	return HandlerFunc[T](f)
}

// loggingHandler is used when no handler is given, it logs every payload.
func loggingHandler[T any](logger *Logger) Handler[T] {
	return HandlerFunc[T](func(payload T) {
		logger.Info().
			Any(`payload`, payload).
			Log(`timer fired`)
	})
}
