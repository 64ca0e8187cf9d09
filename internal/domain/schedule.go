package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is minutes since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("time.Parse: %w", err)
	}
	return TimeOfDayOf(t), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

type OpeningWindow struct {
	IsOpen bool
	Opens  TimeOfDay
	Closes TimeOfDay
}

// Contains reports whether t falls in [Opens, Closes); a window closing at or
// before its opening time runs past midnight.
func (w OpeningWindow) Contains(t TimeOfDay) bool {
	if !w.IsOpen {
		return false
	}
	if w.Closes > w.Opens {
		return t >= w.Opens && t < w.Closes
	}
	return t >= w.Opens || t < w.Closes
}

type WeeklyHours struct {
	Weekday time.Weekday
	OpeningWindow
}

type DateOverride struct {
	Date time.Time
	OpeningWindow
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
