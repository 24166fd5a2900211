package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	staffRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeBookingRepo struct {
	byStaff map[int64][]*domain.Booking
}

func (f *fakeBookingRepo) ListActiveByStaffInRange(_ context.Context, staffID int64, _, _, _ time.Time) ([]*domain.Booking, error) {
	return f.byStaff[staffID], nil
}

type fakeStaffRepo struct {
	byID   map[int64]*domain.Staff
	active []*domain.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	member, ok := f.byID[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return member, nil
}

func (f *fakeStaffRepo) ListActive(_ context.Context) ([]*domain.Staff, error) {
	return f.active, nil
}

type fakeRuleRepo struct {
	byStaff  map[int64][]*domain.AvailabilityRule
	lastDate time.Time
}

func (f *fakeRuleRepo) ListApplicable(_ context.Context, staffID int64, _ int, date time.Time) ([]*domain.AvailabilityRule, error) {
	f.lastDate = date
	return f.byStaff[staffID], nil
}

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeSettings struct {
	tz string
}

func (f *fakeSettings) GetOrCreate(_ context.Context) (*domain.BookingSettings, error) {
	tz := f.tz
	if tz == "" {
		tz = "UTC"
	}
	return &domain.BookingSettings{
		AllowGuestBookings:         true,
		DefaultHoldDurationMinutes: 15,
		CancellationWindowHours:    24,
		Timezone:                   tz,
	}, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Услуга 45 минут + 15 минут буфера: слот занимает ровно час
func testService() *domain.Service {
	return &domain.Service{
		ID:              7,
		Name:            "Стрижка",
		DurationMinutes: 45,
		BufferMinutes:   15,
		PriceAmount:     5000,
		CurrencyCode:    "RUB",
		Active:          true,
	}
}

func morningRule(staffID int64, dow int) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		StaffID:     staffID,
		Type:        domain.RuleRecurring,
		DayOfWeek:   ptr.Ptr(dow),
		StartTime:   types.TimeString("09:00"),
		EndTime:     types.TimeString("11:00"),
		IsAvailable: true,
	}
}

func TestExecute_GeneratesSlotsOnGrid(t *testing.T) {
	// Вторник 14 октября, запрос накануне
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: anna}},
		&fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{3: {morningRule(3, 1)}}},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	require.NoError(t, err)

	// Окно 09:00-11:00, слот длится час: старты 09:00..10:00 с шагом 15 минут
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartAt)
	assert.Equal(t, time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC), resp.Slots[0].EndAt)
	assert.Equal(t, time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC), resp.Slots[4].StartAt)
	for _, s := range resp.Slots {
		assert.Equal(t, int64(3), s.StaffID)
		assert.Equal(t, "Анна", s.StaffName)
	}
}

func TestExecute_BookedIntervalFiltered(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	booked := &domain.Booking{
		StaffID: 3,
		Status:  domain.StatusConfirmed,
		StartAt: time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 10, 30, 0, 0, time.UTC),
	}

	uc := NewUseCase(
		&fakeBookingRepo{byStaff: map[int64][]*domain.Booking{3: {booked}}},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: anna}},
		&fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{3: {morningRule(3, 1)}}},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	require.NoError(t, err)

	// Из пяти кандидатов выживает только 09:00: его интервал [09:00, 10:00)
	// примыкает к бронированию, но не пересекает его
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartAt)
}

func TestExecute_AllActiveStaffSorted(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	boris := &domain.Staff{ID: 4, Name: "Борис", Active: true}

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{active: []*domain.Staff{boris, anna}},
		&fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{
			3: {morningRule(3, 1)},
			4: {morningRule(4, 1)},
		}},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)

	// По 5 слотов на каждого, отсортировано по времени, затем по имени
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, "Анна", resp.Slots[0].StaffName)
	assert.Equal(t, "Борис", resp.Slots[1].StaffName)
	assert.Equal(t, resp.Slots[0].StartAt, resp.Slots[1].StartAt)
	for i := 1; i < len(resp.Slots); i++ {
		assert.False(t, resp.Slots[i].StartAt.Before(resp.Slots[i-1].StartAt))
	}
}

func TestExecute_BlockedDayYieldsNoSlots(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	blocked := &domain.AvailabilityRule{
		StaffID:      3,
		Type:         domain.RuleBlocked,
		SpecificDate: &date,
	}

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: anna}},
		&fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{3: {morningRule(3, 1), blocked}}},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_WesternTimezoneKeepsRequestedDay(t *testing.T) {
	// Дата из запроса парсится как полночь UTC; при таймзоне настроек
	// западнее UTC слоты все равно должны попасть на запрошенный день
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC) // вторник
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	rules := &fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{3: {morningRule(3, 1)}}}
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: anna}},
		rules,
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{tz: "America/New_York"},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 5)
	assert.True(t, resp.Slots[0].StartAt.Equal(time.Date(2025, 10, 14, 9, 0, 0, 0, loc)))
	for _, s := range resp.Slots {
		assert.Equal(t, "2025-10-14", s.StartAt.In(loc).Format("2006-01-02"))
	}

	// В хранилище правил уходит день в таймзоне настроек
	assert.Equal(t, "2025-10-14", rules.lastDate.Format("2006-01-02"))
}

func TestExecute_WesternTimezoneBlockedDay(t *testing.T) {
	// Дата точечного правила хранится как полночь UTC: блокировка
	// должна сработать и при таймзоне настроек западнее UTC
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	blocked := &domain.AvailabilityRule{
		StaffID:      3,
		Type:         domain.RuleBlocked,
		SpecificDate: &date,
	}

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: anna}},
		&fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{3: {morningRule(3, 1), blocked}}},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{tz: "America/New_York"},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastSlotsExcludedSameDay(t *testing.T) {
	// Запрос в середине дня: слоты до текущего момента не выдаются
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 14, 9, 40, 0, 0, time.UTC)

	anna := &domain.Staff{ID: 3, Name: "Анна", Active: true}
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: anna}},
		&fakeRuleRepo{byStaff: map[int64][]*domain.AvailabilityRule{3: {morningRule(3, 1)}}},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	require.NoError(t, err)

	// Остались 09:45 и 10:00
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, time.Date(2025, 10, 14, 9, 45, 0, 0, time.UTC), resp.Slots[0].StartAt)
}

func TestExecute_DateInPast(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{},
		&fakeRuleRepo{},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 7,
		Date:      time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InactiveStaffRejected(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 18, 0, 0, 0, time.UTC)

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStaffRepo{byID: map[int64]*domain.Staff{3: {ID: 3, Name: "Анна", Active: false}}},
		&fakeRuleRepo{},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 7, StaffID: ptr.Ptr(int64(3)), Date: date})
	assert.ErrorIs(t, err, ErrStaffInactive)
}
