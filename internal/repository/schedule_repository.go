package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"time"
)

type scheduleRepository struct {
	q *db.Queries
}

func NewSchedule(pool *pgxpool.Pool) port.ScheduleRepository {
	return &scheduleRepository{
		q: db.New(pool),
	}
}

func (r *scheduleRepository) WeeklyHours(ctx context.Context, storeID uuid.UUID) ([]domain.WeeklyHours, error) {
	rows, err := r.q.ListStoreHours(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("q.ListStoreHours: %w", err)
	}

	hours := make([]domain.WeeklyHours, 0, len(rows))
	for _, row := range rows {
		hours = append(hours, domain.WeeklyHours{
			Weekday: time.Weekday(row.Weekday),
			OpeningWindow: domain.OpeningWindow{
				IsOpen: row.IsOpen,
				Opens:  domain.TimeOfDay(row.OpensMinute),
				Closes: domain.TimeOfDay(row.ClosesMinute),
			},
		})
	}

	return hours, nil
}

func (r *scheduleRepository) DateOverrides(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]domain.DateOverride, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("to is before from")
	}

	rows, err := r.q.ListStoreDateOverrides(ctx, db.ListStoreDateOverridesParams{
		StoreID:  storeID,
		FromDate: domain.DateOnly(from),
		ToDate:   domain.DateOnly(to),
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListStoreDateOverrides: %w", err)
	}

	overrides := make([]domain.DateOverride, 0, len(rows))
	for _, row := range rows {
		overrides = append(overrides, domain.DateOverride{
			Date: row.Date,
			OpeningWindow: domain.OpeningWindow{
				IsOpen: row.IsOpen,
				Opens:  domain.TimeOfDay(row.OpensMinute),
				Closes: domain.TimeOfDay(row.ClosesMinute),
			},
		})
	}

	return overrides, nil
}

func (r *scheduleRepository) SetWeeklyHours(ctx context.Context, storeID uuid.UUID, hours domain.WeeklyHours) error {
	err := r.q.UpsertStoreHours(ctx, db.UpsertStoreHoursParams{
		StoreID:      storeID,
		Weekday:      int16(hours.Weekday),
		IsOpen:       hours.IsOpen,
		OpensMinute:  int32(hours.Opens),
		ClosesMinute: int32(hours.Closes),
	})
	if err != nil {
		return fmt.Errorf("q.UpsertStoreHours: %w", err)
	}
	return nil
}

func (r *scheduleRepository) SetDateOverride(ctx context.Context, storeID uuid.UUID, override domain.DateOverride) error {
	err := r.q.UpsertStoreDateOverride(ctx, db.UpsertStoreDateOverrideParams{
		StoreID:      storeID,
		Date:         domain.DateOnly(override.Date),
		IsOpen:       override.IsOpen,
		OpensMinute:  int32(override.Opens),
		ClosesMinute: int32(override.Closes),
	})
	if err != nil {
		return fmt.Errorf("q.UpsertStoreDateOverride: %w", err)
	}
	return nil
}
