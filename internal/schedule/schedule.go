// Package schedule decides whether a store accepts orders for a given date and time.
package schedule

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"time"
)

// Horizon is how many days NextOpenDate searches, today included.
const Horizon = 30

type Gate struct {
	repo port.ScheduleRepository
	loc  *time.Location
	now  func() time.Time
}

func NewGate(repo port.ScheduleRepository, loc *time.Location, now func() time.Time) *Gate {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Gate{repo: repo, loc: loc, now: now}
}

// Today is the current calendar date in the store location.
func (g *Gate) Today() time.Time {
	return domain.DateOnly(g.now().In(g.loc))
}

// Check returns nil when the store is open on date at the given time,
// domain.ErrDateClosed when the whole date is closed and domain.ErrOutsideHours
// when the time falls outside the window. A nil time means now, and is only
// compared when date is today.
func (g *Gate) Check(ctx context.Context, storeID uuid.UUID, date time.Time, at *domain.TimeOfDay) error {
	day := g.calendarDate(date)

	window, err := g.window(ctx, storeID, day)
	if err != nil {
		return err
	}
	if !window.IsOpen {
		return domain.ErrDateClosed
	}

	var t domain.TimeOfDay
	switch {
	case at != nil:
		t = *at
	case domain.SameDate(day, g.Today()):
		t = domain.TimeOfDayOf(g.now().In(g.loc))
	default:
		return nil
	}

	if !window.Contains(t) {
		return fmt.Errorf("%w: %s is outside %s-%s", domain.ErrOutsideHours, t, window.Opens, window.Closes)
	}
	return nil
}

// NextOpenDate returns the first date from today on whose window is open.
func (g *Gate) NextOpenDate(ctx context.Context, storeID uuid.UUID) (time.Time, error) {
	today := g.Today()
	last := today.AddDate(0, 0, Horizon-1)

	weekly, err := g.repo.WeeklyHours(ctx, storeID)
	if err != nil {
		return time.Time{}, fmt.Errorf("repo.WeeklyHours: %w", err)
	}
	overrides, err := g.repo.DateOverrides(ctx, storeID, today, last)
	if err != nil {
		return time.Time{}, fmt.Errorf("repo.DateOverrides: %w", err)
	}

	byDate := make(map[string]domain.OpeningWindow, len(overrides))
	for _, o := range overrides {
		byDate[o.Date.Format(time.DateOnly)] = o.OpeningWindow
	}

	for day := today; !day.After(last); day = day.AddDate(0, 0, 1) {
		if resolve(day, weekly, byDate).IsOpen {
			return day, nil
		}
	}

	return time.Time{}, domain.ErrNoAvailability
}

func (g *Gate) window(ctx context.Context, storeID uuid.UUID, day time.Time) (domain.OpeningWindow, error) {
	overrides, err := g.repo.DateOverrides(ctx, storeID, day, day)
	if err != nil {
		return domain.OpeningWindow{}, fmt.Errorf("repo.DateOverrides: %w", err)
	}

	byDate := make(map[string]domain.OpeningWindow, len(overrides))
	for _, o := range overrides {
		byDate[o.Date.Format(time.DateOnly)] = o.OpeningWindow
	}
	if w, ok := byDate[day.Format(time.DateOnly)]; ok {
		return w, nil
	}

	weekly, err := g.repo.WeeklyHours(ctx, storeID)
	if err != nil {
		return domain.OpeningWindow{}, fmt.Errorf("repo.WeeklyHours: %w", err)
	}
	return resolve(day, weekly, nil), nil
}

// resolve picks the override for day if any, else the weekly rule. Days with
// no rule at all are closed.
func resolve(day time.Time, weekly []domain.WeeklyHours, overrides map[string]domain.OpeningWindow) domain.OpeningWindow {
	if w, ok := overrides[day.Format(time.DateOnly)]; ok {
		return w
	}
	for _, h := range weekly {
		if h.Weekday == day.Weekday() {
			return h.OpeningWindow
		}
	}
	return domain.OpeningWindow{}
}

// calendarDate keeps the year, month and day of t and places it in the store location.
func (g *Gate) calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, g.loc)
}
