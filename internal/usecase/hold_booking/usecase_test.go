package hold_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeBookingRepo struct {
	created      *domain.Booking
	createErr    error
	releaseCalls int
	released     int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) ReleaseExpiredHolds(_ context.Context, _ int64, _ time.Time) (int64, error) {
	f.releaseCalls++
	return f.released, nil
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
	settings *domain.BookingSettings
}

func (f *fakeSettings) GetOrCreate(_ context.Context) (*domain.BookingSettings, error) {
	return f.settings, nil
}

type fakeChecker struct {
	resp    *check_slot.Response
	lastReq *check_slot.Request
}

func (f *fakeChecker) Execute(_ context.Context, req *check_slot.Request) (*check_slot.Response, error) {
	f.lastReq = req
	return f.resp, nil
}

type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
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

func testService() *domain.Service {
	return &domain.Service{
		ID:              7,
		Name:            "Стрижка",
		DurationMinutes: 45,
		BufferMinutes:   15,
		PriceAmount:     5000,
		CurrencyCode:    "RUB",
		DepositType:     domain.DepositPercentage,
		DepositValue:    20,
		AllowInPerson:   true,
		AllowOnline:     true,
		Active:          true,
	}
}

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		AllowGuestBookings:         true,
		DefaultHoldDurationMinutes: 15,
		CancellationWindowHours:    24,
		Timezone:                   "UTC",
	}
}

func newTestUseCase(
	repo *fakeBookingRepo,
	catalog *fakeCatalogRepo,
	settings *fakeSettings,
	checker *fakeChecker,
	now time.Time,
) *UseCase {
	uc := NewUseCase(repo, catalog, settings, checker, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CreatesHoldWithPriceSnapshot(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	startAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	checker := &fakeChecker{resp: &check_slot.Response{Available: true}}
	uc := newTestUseCase(repo, &fakeCatalogRepo{service: testService()}, &fakeSettings{settings: testSettings()}, checker, now)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    startAt,
		CustomerID: ptr.Ptr(int64(100)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusHeld), resp.Status)

	// Интервал: 45 минут услуги + 15 минут буфера
	assert.Equal(t, startAt, resp.StartAt)
	assert.Equal(t, startAt.Add(60*time.Minute), resp.EndAt)

	// Снимок цены и депозита: 20% от 5000
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, int64(5000), resp.PriceAmount)
	assert.Equal(t, "RUB", resp.CurrencyCode)
	assert.Equal(t, int64(1000), resp.DepositAmount)

	// Срок удержания из настроек
	assert.Equal(t, now.Add(15*time.Minute), resp.HoldExpiresAt)

	// Просроченные удержания освобождаются до вставки
	assert.Equal(t, 1, repo.releaseCalls)

	// Проверка доступности вызвана с рассчитанным интервалом
	require.NotNil(t, checker.lastReq)
	assert.Equal(t, startAt.Add(60*time.Minute), checker.lastReq.EndAt)
}

func TestExecute_FixedDepositSnapshot(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	service := testService()
	service.DepositType = domain.DepositFixed
	service.DepositValue = 2500

	repo := &fakeBookingRepo{}
	checker := &fakeChecker{resp: &check_slot.Response{Available: true}}
	uc := newTestUseCase(repo, &fakeCatalogRepo{service: service}, &fakeSettings{settings: testSettings()}, checker, now)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		CustomerID: ptr.Ptr(int64(100)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), resp.DepositAmount)
}

func TestExecute_GuestBookingDisabled(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	settings := testSettings()
	settings.AllowGuestBookings = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{settings: settings},
		&fakeChecker{resp: &check_slot.Response{Available: true}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		GuestName:  ptr.Ptr("Анна"),
		GuestPhone: ptr.Ptr("+79990001122"),
	})
	assert.ErrorIs(t, err, ErrGuestBookingsDisabled)
}

func TestExecute_GuestBookingRequiresContact(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{settings: testSettings()},
		&fakeChecker{resp: &check_slot.Response{Available: true}},
		now,
	)

	// Без имени
	_, err := uc.Execute(context.Background(), &Request{
		StaffID:   3,
		ServiceID: 7,
		StartAt:   now.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Имя есть, но нет ни телефона, ни почты
	_, err = uc.Execute(context.Background(), &Request{
		StaffID:   3,
		ServiceID: 7,
		StartAt:   now.Add(24 * time.Hour),
		GuestName: ptr.Ptr("Анна"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{settings: testSettings()},
		&fakeChecker{resp: &check_slot.Response{Available: false, Reason: check_slot.ReasonSlotOccupied}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		CustomerID: ptr.Ptr(int64(100)),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConcurrentConflictMapsToSlotConflict(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	uc := newTestUseCase(
		repo,
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{settings: testSettings()},
		&fakeChecker{resp: &check_slot.Response{Available: true}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		CustomerID: ptr.Ptr(int64(100)),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_SerializationAbortMapsToSlotConflict(t *testing.T) {
	// Обрыв SERIALIZABLE транзакции на коммите - та же гонка за слот
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	commitErr := fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: testService()},
		&fakeSettings{settings: testSettings()},
		&fakeChecker{resp: &check_slot.Response{Available: true}},
		&fakeTxManager{commitErr: commitErr},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		CustomerID: ptr.Ptr(int64(100)),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ServiceInactive(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	service := testService()
	service.Active = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: service},
		&fakeSettings{settings: testSettings()},
		&fakeChecker{resp: &check_slot.Response{Available: true}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		CustomerID: ptr.Ptr(int64(100)),
	})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{err: catalogRepo.ErrServiceNotFound},
		&fakeSettings{settings: testSettings()},
		&fakeChecker{resp: &check_slot.Response{Available: true}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:    3,
		ServiceID:  7,
		StartAt:    now.Add(24 * time.Hour),
		CustomerID: ptr.Ptr(int64(100)),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
