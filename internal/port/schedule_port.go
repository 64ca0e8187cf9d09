package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"time"
)

type ScheduleRepository interface {
	WeeklyHours(ctx context.Context, storeID uuid.UUID) ([]domain.WeeklyHours, error)

	// DateOverrides returns overrides with from <= date <= to.
	DateOverrides(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]domain.DateOverride, error)

	SetWeeklyHours(ctx context.Context, storeID uuid.UUID, hours domain.WeeklyHours) error

	SetDateOverride(ctx context.Context, storeID uuid.UUID, override domain.DateOverride) error
}
