package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeSettingsRepo struct {
	settings *domain.BookingSettings
	updated  *domain.BookingSettings
}

func (f *fakeSettingsRepo) GetOrCreate(_ context.Context) (*domain.BookingSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	f.updated = s
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		AllowGuestBookings:         true,
		DefaultHoldDurationMinutes: 15,
		CancellationWindowHours:    24,
		Timezone:                   "UTC",
	}
}

func TestGet_ReturnsSettings(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{settings: defaultSettings()}, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.AllowGuestBookings)
	assert.Equal(t, 15, resp.DefaultHoldDurationMinutes)
	assert.Equal(t, 24, resp.CancellationWindowHours)
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	repo := &fakeSettingsRepo{settings: defaultSettings()}
	svc := NewService(repo, nopLogger{})

	// Меняем только окно отмены, остальные поля сохраняются
	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		CancellationWindowHours: ptr.Ptr(48),
	})
	require.NoError(t, err)

	assert.Equal(t, 48, resp.CancellationWindowHours)
	assert.Equal(t, 15, resp.DefaultHoldDurationMinutes)
	assert.True(t, resp.AllowGuestBookings)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 48, repo.updated.CancellationWindowHours)
}

func TestUpdate_ValidationBounds(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{
			name: "удержание короче минимума",
			req:  &models.UpdateSettingsRequest{DefaultHoldDurationMinutes: ptr.Ptr(domain.MinHoldDurationMinutes - 1)},
		},
		{
			name: "удержание дольше максимума",
			req:  &models.UpdateSettingsRequest{DefaultHoldDurationMinutes: ptr.Ptr(domain.MaxHoldDurationMinutes + 1)},
		},
		{
			name: "отрицательное окно отмены",
			req:  &models.UpdateSettingsRequest{CancellationWindowHours: ptr.Ptr(-1)},
		},
		{
			name: "окно отмены больше месяца",
			req:  &models.UpdateSettingsRequest{CancellationWindowHours: ptr.Ptr(domain.MaxCancellationWindowHours + 1)},
		},
		{
			name: "неизвестный часовой пояс",
			req:  &models.UpdateSettingsRequest{Timezone: ptr.Ptr("Mars/Olympus")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSettingsRepo{settings: defaultSettings()}
			svc := NewService(repo, nopLogger{})

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdate_TimezoneChange(t *testing.T) {
	repo := &fakeSettingsRepo{settings: defaultSettings()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		Timezone: ptr.Ptr("Europe/Moscow"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
}
