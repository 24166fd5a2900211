package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	err     error

	cancelledID int64
	reason      *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason *string, _ time.Time) error {
	f.cancelledID = id
	f.reason = reason
	return nil
}

type fakeSettings struct {
	settings *domain.BookingSettings
}

func (f *fakeSettings) GetOrCreate(_ context.Context) (*domain.BookingSettings, error) {
	return f.settings, nil
}

type fakePublisher struct {
	cancelled []int64
	orderIDs  []*string
}

func (f *fakePublisher) BookingCancelled(_ context.Context, bookingID int64, orderID *string) {
	f.cancelled = append(f.cancelled, bookingID)
	f.orderIDs = append(f.orderIDs, orderID)
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

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		AllowGuestBookings:         true,
		DefaultHoldDurationMinutes: 15,
		CancellationWindowHours:    24,
		Timezone:                   "UTC",
	}
}

func confirmedBooking(startAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        42,
		StaffID:   3,
		ServiceID: 7,
		StartAt:   startAt,
		EndAt:     startAt.Add(time.Hour),
		Status:    domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeBookingRepo, pub *fakePublisher, now time.Time) *UseCase {
	uc := NewUseCase(repo, &fakeSettings{settings: testSettings()}, pub, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CancelOutsideWindow(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	// До начала 48 часов, окно отмены 24 часа
	repo := &fakeBookingRepo{booking: confirmedBooking(now.Add(48 * time.Hour))}
	pub := &fakePublisher{}
	uc := newTestUseCase(repo, pub, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		Reason:    ptr.Ptr("изменились планы"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, now, resp.CancelledAt)
	assert.Equal(t, int64(42), repo.cancelledID)
	require.NotNil(t, repo.reason)
	assert.Equal(t, "изменились планы", *repo.reason)
	assert.Equal(t, []int64{42}, pub.cancelled)
}

func TestExecute_WithinWindowRejected(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	// До начала 12 часов - меньше окна отмены
	repo := &fakeBookingRepo{booking: confirmedBooking(now.Add(12 * time.Hour))}
	uc := newTestUseCase(repo, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})
	assert.ErrorIs(t, err, ErrWithinCancellationWindow)
	assert.Zero(t, repo.cancelledID)
}

func TestExecute_AdminBypassesWindow(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{booking: confirmedBooking(now.Add(12 * time.Hour))}
	pub := &fakePublisher{}
	uc := newTestUseCase(repo, pub, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, []int64{42}, pub.cancelled)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			b := confirmedBooking(now.Add(48 * time.Hour))
			b.Status = status
			uc := newTestUseCase(&fakeBookingRepo{booking: b}, &fakePublisher{}, now)

			_, err := uc.Execute(context.Background(), &Request{BookingID: 42, IsAdmin: true})
			assert.ErrorIs(t, err, ErrAlreadyFinalized)
		})
	}
}

func TestExecute_HeldBookingCancellable(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	b := confirmedBooking(now.Add(48 * time.Hour))
	b.Status = domain.StatusHeld
	b.HoldExpiresAt = ptr.Ptr(now.Add(10 * time.Minute))

	uc := newTestUseCase(&fakeBookingRepo{booking: b}, &fakePublisher{}, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestExecute_OrderIDPassedToEvent(t *testing.T) {
	// Для оплаченного бронирования событие несет идентификатор заказа,
	// по нему запускается возврат средств
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	b := confirmedBooking(now.Add(48 * time.Hour))
	b.OrderID = ptr.Ptr("order_77")

	pub := &fakePublisher{}
	uc := newTestUseCase(&fakeBookingRepo{booking: b}, pub, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})
	require.NoError(t, err)
	require.Len(t, pub.orderIDs, 1)
	require.NotNil(t, pub.orderIDs[0])
	assert.Equal(t, "order_77", *pub.orderIDs[0])
}
