package repository_test

import (
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"time"
)

func (suite *repositorySuite) TestSchedule() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	store := suite.createStore(false)

	monday := domain.WeeklyHours{
		Weekday: time.Monday,
		OpeningWindow: domain.OpeningWindow{
			IsOpen: true,
			Opens:  domain.NewTimeOfDay(18, 0),
			Closes: domain.NewTimeOfDay(2, 0),
		},
	}
	require.NoError(t, suite.schedule.SetWeeklyHours(ctx, store.ID, monday))

	monday.Closes = domain.NewTimeOfDay(23, 0)
	require.NoError(t, suite.schedule.SetWeeklyHours(ctx, store.ID, monday))

	hours, err := suite.schedule.WeeklyHours(ctx, store.ID)
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.Equal(t, monday, hours[0])

	christmas := time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)
	require.NoError(t, suite.schedule.SetDateOverride(ctx, store.ID, domain.DateOverride{Date: christmas}))

	overrides, err := suite.schedule.DateOverrides(ctx, store.ID,
		christmas.AddDate(0, 0, -1), christmas.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.True(t, domain.SameDate(christmas, overrides[0].Date))
	assert.False(t, overrides[0].IsOpen)

	overrides, err = suite.schedule.DateOverrides(ctx, store.ID,
		christmas.AddDate(0, 0, 1), christmas.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
