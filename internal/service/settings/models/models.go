package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек бронирования
// nil-поля не меняются
type UpdateSettingsRequest struct {
	AllowGuestBookings         *bool   `json:"allowGuestBookings,omitempty"`
	DefaultHoldDurationMinutes *int    `json:"defaultHoldDurationMinutes,omitempty"`
	CancellationWindowHours    *int    `json:"cancellationWindowHours,omitempty"`
	Timezone                   *string `json:"timezone,omitempty"`
}

// SettingsResponse ответ с настройками бронирования
type SettingsResponse struct {
	AllowGuestBookings         bool   `json:"allowGuestBookings"`
	DefaultHoldDurationMinutes int    `json:"defaultHoldDurationMinutes"`
	CancellationWindowHours    int    `json:"cancellationWindowHours"`
	Timezone                   string `json:"timezone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		AllowGuestBookings:         s.AllowGuestBookings,
		DefaultHoldDurationMinutes: s.DefaultHoldDurationMinutes,
		CancellationWindowHours:    s.CancellationWindowHours,
		Timezone:                   s.Timezone,
		CreatedAt:                  s.CreatedAt,
		UpdatedAt:                  s.UpdatedAt,
	}
}
