package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// settingsRowID настройки - singleton, в таблице всегда одна строка с id = 1
const settingsRowID = 1

var settingsColumns = []string{
	"id",
	"allow_guest_bookings",
	"default_hold_duration_minutes",
	"cancellation_window_hours",
	"timezone",
	"created_at",
	"updated_at",
}

// Repository репозиторий глобальных настроек бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает запись настроек
func (r *Repository) Get(ctx context.Context) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("booking_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.AllowGuestBookings,
		&s.DefaultHoldDurationMinutes,
		&s.CancellationWindowHours,
		&s.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetOrCreate читает настройки, лениво создавая запись с дефолтами
// Идемпотентно: конкурирующие первые чтения не конфликтуют -
// вставка использует ON CONFLICT DO NOTHING, затем запись перечитывается
func (r *Repository) GetOrCreate(ctx context.Context) (*domain.BookingSettings, error) {
	existing, err := r.Get(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}

	defaults := domain.DefaultBookingSettings()

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"id",
			"allow_guest_bookings",
			"default_hold_duration_minutes",
			"cancellation_window_hours",
			"timezone",
		).
		Values(
			settingsRowID,
			defaults.AllowGuestBookings,
			defaults.DefaultHoldDurationMinutes,
			defaults.CancellationWindowHours,
			defaults.Timezone,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %v", ErrExecQuery, err)
	}

	return r.Get(ctx)
}

// Update обновляет настройки
func (r *Repository) Update(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_settings").
		Set("allow_guest_bookings", s.AllowGuestBookings).
		Set("default_hold_duration_minutes", s.DefaultHoldDurationMinutes).
		Set("cancellation_window_hours", s.CancellationWindowHours).
		Set("timezone", s.Timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrSettingsNotFound
	}

	return r.Get(ctx)
}
