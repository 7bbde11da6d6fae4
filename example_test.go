package timingwheel_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/hyperjiang/timingwheel"
)

func ExampleWheel() {
	tw := timingwheel.Hierarchical[string](3, 16, 10)

	h, _ := tw.Schedule(5, "A")
	fmt.Printf("placed at level %d, slot %d\n", h.Level, h.Slot)

	fmt.Println(tw.Tick(4))
	fmt.Println(tw.Tick(1))
	fmt.Println(tw.Tick(1))

	//output:
	//placed at level 0, slot 5
	//[]
	//[A]
	//[]
}

func ExampleWheel_Schedule_tooLarge() {
	tw := timingwheel.Hierarchical[string](3, 16, 10)

	_, err := tw.Schedule(1000, "X")
	fmt.Println(errors.Is(err, timingwheel.ErrTimerTooLarge))
	fmt.Println(err)

	_, err = tw.Schedule(999, "X")
	fmt.Println(err)

	//output:
	//true
	//timingwheel: timer too large: delay 1000 ticks, max delay 1000 ticks
	//<nil>
}

func ExampleRunner() {
	r := timingwheel.NewRunner[string](
		timingwheel.NewHandlerFunc(func(p string) { fmt.Println("fired", p) }),
		timingwheel.WithTickDuration(time.Second),
	)

	_, _ = r.Schedule(1500*time.Millisecond, "retry")
	_, _ = r.Schedule(time.Second, "timeout")

	// a simulated clock, r.Start would advance on a real one
	r.Advance(1)
	r.Advance(1)

	//output:
	//fired timeout
	//fired retry
}
