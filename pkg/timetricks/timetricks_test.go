package timetricks

import (
	"fmt"
	"testing"
	"time"
)

func ExampleWithinWeek() {
	t := time.Now()
	for i := 0; i < 8; i++ {
		fmt.Println(i, WithinWeek(t.Add(time.Duration(i)*24*time.Hour)))
	}
	// Output:
	// 0 true
	// 1 true
	// 2 true
	// 3 true
	// 4 true
	// 5 true
	// 6 true
	// 7 false
}

func TestDay(t *testing.T) {
	now := time.Now()
	if got := Day(now); got != "Today" {
		t.Errorf("Day(now) = %q, want Today", got)
	}
	if got := Day(now.Add(24 * time.Hour)); got != "Tomorrow" {
		t.Errorf("Day(now+1d) = %q, want Tomorrow", got)
	}
	threeOut := now.Add(3 * 24 * time.Hour)
	if got := Day(threeOut); got != threeOut.Weekday().String() {
		t.Errorf("Day(now+3d) = %q, want %q", got, threeOut.Weekday())
	}
	farOut := now.Add(30 * 24 * time.Hour)
	if got := Day(farOut); got != farOut.Format("01/02") {
		t.Errorf("Day(now+30d) = %q, want %q", got, farOut.Format("01/02"))
	}
	past := now.Add(-30 * 24 * time.Hour)
	if got := Day(past); got != past.Format("01/02") {
		t.Errorf("Day(now-30d) = %q, want %q", got, past.Format("01/02"))
	}
}

func TestTrimClock(t *testing.T) {
	in := time.Date(2022, time.March, 1, 14, 54, 9, 0, time.UTC)
	got := TrimClock(in)
	if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("TrimClock left a wall clock: %v", got)
	}
	if !SameDay(in, got) {
		t.Errorf("TrimClock moved the day: %v", got)
	}
}

func TestSetClock(t *testing.T) {
	in := time.Date(2022, time.March, 1, 14, 54, 9, 0, time.UTC)
	got := SetClock(in, 6, 30)
	if h, m, _ := got.Clock(); h != 6 || m != 30 {
		t.Errorf("SetClock = %v, want 06:30", got)
	}
}

func TestClock(t *testing.T) {
	in := time.Date(2022, time.March, 1, 16, 27, 0, 0, time.UTC)
	if got := Clock(in); got != "4:27 PM" {
		t.Errorf("Clock = %q, want 4:27 PM", got)
	}
}
