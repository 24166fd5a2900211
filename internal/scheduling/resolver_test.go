package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestResolveRule_Priority(t *testing.T) {
	// Среда 15 октября 2025
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	dow := 2 // среда при понедельник = 0

	blocked := &domain.AvailabilityRule{
		ID:           1,
		Type:         domain.RuleBlocked,
		SpecificDate: ptr.Ptr(date),
	}
	exception := &domain.AvailabilityRule{
		ID:           2,
		Type:         domain.RuleException,
		SpecificDate: ptr.Ptr(date),
		StartTime:    "10:00",
		EndTime:      "14:00",
		IsAvailable:  true,
	}
	recurring := &domain.AvailabilityRule{
		ID:          3,
		Type:        domain.RuleRecurring,
		DayOfWeek:   ptr.Ptr(dow),
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}

	t.Run("blocked wins over exception and recurring", func(t *testing.T) {
		got := ResolveRule([]*domain.AvailabilityRule{recurring, exception, blocked}, date, time.UTC)
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("exception wins over recurring", func(t *testing.T) {
		got := ResolveRule([]*domain.AvailabilityRule{recurring, exception}, date, time.UTC)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.ID)
	})

	t.Run("recurring applies when nothing overrides it", func(t *testing.T) {
		got := ResolveRule([]*domain.AvailabilityRule{recurring}, date, time.UTC)
		require.NotNil(t, got)
		assert.Equal(t, int64(3), got.ID)
	})

	t.Run("no rules resolves to nil", func(t *testing.T) {
		got := ResolveRule(nil, date, time.UTC)
		assert.Nil(t, got)
	})
}

func TestResolveRule_DateMismatch(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	rules := []*domain.AvailabilityRule{
		{
			ID:           1,
			Type:         domain.RuleBlocked,
			SpecificDate: ptr.Ptr(otherDate),
		},
		{
			ID:           2,
			Type:         domain.RuleException,
			SpecificDate: ptr.Ptr(otherDate),
			StartTime:    "10:00",
			EndTime:      "14:00",
			IsAvailable:  true,
		},
	}

	// Правила на другую дату не применяются
	assert.Nil(t, ResolveRule(rules, date, time.UTC))
}

func TestResolveRule_RecurringWrongWeekday(t *testing.T) {
	// Среда, а правило на понедельник
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	rules := []*domain.AvailabilityRule{
		{
			ID:          1,
			Type:        domain.RuleRecurring,
			DayOfWeek:   ptr.Ptr(0),
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		},
	}

	assert.Nil(t, ResolveRule(rules, date, time.UTC))
}

func TestResolveRule_NegativeUTCOffset(t *testing.T) {
	// Дата правила хранится как полночь UTC; день, на который
	// разрешается правило, задан полуночью в таймзоне западнее UTC.
	// Календарные дни совпадают, сдвиг момента не должен мешать
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	storedDate := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	localDay := time.Date(2025, 10, 14, 0, 0, 0, 0, loc)

	blocked := &domain.AvailabilityRule{
		ID:           1,
		Type:         domain.RuleBlocked,
		SpecificDate: ptr.Ptr(storedDate),
	}

	got := ResolveRule([]*domain.AvailabilityRule{blocked}, localDay, loc)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)

	// И наоборот: правило на соседний день не применяется
	nextDay := time.Date(2025, 10, 15, 0, 0, 0, 0, loc)
	assert.Nil(t, ResolveRule([]*domain.AvailabilityRule{blocked}, nextDay, loc))
}

func TestDayOfWeek_MondayIsZero(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), 0}, // понедельник
		{time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), 2}, // среда
		{time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC), 5}, // суббота
		{time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC), 6}, // воскресенье
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DayOfWeek(tt.date), "date %s", tt.date.Format("2006-01-02"))
	}
}
