package tenon

import (
	"testing"
	"time"
)

func TestFakeClockAdvanceAndSet(t *testing.T) {
	start := time.Now()
	fc := NewFakeClock(start)

	if !fc.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", fc.Now(), start)
	}

	fc.Advance(5 * time.Second)
	if want := start.Add(5 * time.Second); !fc.Now().Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", fc.Now(), want)
	}

	later := start.Add(time.Hour)
	fc.Set(later)
	if !fc.Now().Equal(later) {
		t.Fatalf("Now() after Set = %v, want %v", fc.Now(), later)
	}
}

func TestClockNowUsesInjectedSource(t *testing.T) {
	start := time.Now()
	c := Clock{now: func() time.Time { return start }}
	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", c.Now(), start)
	}
}
