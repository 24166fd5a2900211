package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDate_KeepsCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Дата из запроса парсится как полночь UTC; пересчет момента
	// в Нью-Йорк дал бы 13-е число, привязка даты - нет
	utcDate := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	day := LocalDate(utcDate, loc)

	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, loc), day)
	assert.Equal(t, "2025-10-14", day.Format("2006-01-02"))
}

func TestDayBounds_NegativeUTCOffset(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	utcDate := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	from, to := DayBounds(utcDate, loc)

	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, loc), to)
}

func TestDateInPast_AcrossTimezones(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// В UTC уже 15-е, в Нью-Йорке еще вечер 14-го
	now := time.Date(2025, 10, 15, 2, 0, 0, 0, time.UTC)

	assert.False(t, DateInPast(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), now, loc))
	assert.True(t, DateInPast(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), now, loc))

	// В UTC тот же момент - уже следующий день
	assert.True(t, DateInPast(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), now, time.UTC))
}
