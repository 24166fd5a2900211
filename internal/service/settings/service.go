package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис глобальных настроек бронирования
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает текущие настройки, лениво создавая запись с дефолтами
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update частично обновляет настройки: nil-поля запроса сохраняют текущее значение
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating booking settings")

	current, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		s.logger.Error("Update: failed to load current settings: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.AllowGuestBookings != nil {
		current.AllowGuestBookings = *req.AllowGuestBookings
	}
	if req.DefaultHoldDurationMinutes != nil {
		current.DefaultHoldDurationMinutes = *req.DefaultHoldDurationMinutes
	}
	if req.CancellationWindowHours != nil {
		current.CancellationWindowHours = *req.CancellationWindowHours
	}
	if req.Timezone != nil {
		current.Timezone = *req.Timezone
	}

	if err := validateSettings(current); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: booking settings updated")
	return models.FromDomainSettings(updated), nil
}

// validateSettings проверяет бизнес-ограничения настроек
func validateSettings(s *domain.BookingSettings) error {
	if s.DefaultHoldDurationMinutes < domain.MinHoldDurationMinutes ||
		s.DefaultHoldDurationMinutes > domain.MaxHoldDurationMinutes {
		return fmt.Errorf("%w: hold duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinHoldDurationMinutes, domain.MaxHoldDurationMinutes)
	}

	if s.CancellationWindowHours < domain.MinCancellationWindowHours ||
		s.CancellationWindowHours > domain.MaxCancellationWindowHours {
		return fmt.Errorf("%w: cancellation window must be between %d and %d hours",
			ErrInvalidInput, domain.MinCancellationWindowHours, domain.MaxCancellationWindowHours)
	}

	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
	}

	return nil
}
