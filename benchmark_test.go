package timingwheel_test

import (
	"testing"

	"github.com/hyperjiang/timingwheel"
)

func BenchmarkSchedule_slotOverload(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tw := timingwheel.Hierarchical[int](16, 1024, 3)
		for j := 0; j < 3072; j++ {
			if _, err := tw.Schedule(50, j); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkTick_heavy(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tw := timingwheel.Hierarchical[int](16, 1024, 3)
		for j := 0; j < 3072; j++ {
			if _, err := tw.Schedule(50, j); err != nil {
				b.Fatal(err)
			}
		}
		if n := len(tw.Tick(100)); n != 3072 {
			b.Fatal(n)
		}
	}
}

func BenchmarkScheduleTick_steady(b *testing.B) {
	tw := timingwheel.Hierarchical[int](4, 16, 64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 1024; j++ {
			if _, err := tw.Schedule(uint64(j*131)%tw.MaxDelay(), j); err != nil {
				b.Fatal(err)
			}
		}
		tw.Tick(1)
	}
}
