package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Коды ошибок Postgres, означающие нарушение ограничения уникальности слота
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var bookingColumns = []string{
	"id",
	"staff_id",
	"service_id",
	"customer_id",
	"start_at",
	"end_at",
	"status",
	"hold_expires_at",
	"service_name",
	"price_amount",
	"currency_code",
	"deposit_amount",
	"payment_mode",
	"amount_paid",
	"order_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"notes",
	"confirmed_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
//
// Проверка доступности слота на чтении не атомарна со вставкой, поэтому
// единственная настоящая защита от двойного бронирования - exclusion
// constraint в БД. Его нарушение возвращается как ErrSlotTaken и должно
// трактоваться вызывающим кодом как ожидаемый конфликт, а не как сбой
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"staff_id",
			"service_id",
			"customer_id",
			"start_at",
			"end_at",
			"status",
			"hold_expires_at",
			"service_name",
			"price_amount",
			"currency_code",
			"deposit_amount",
			"guest_name",
			"guest_email",
			"guest_phone",
			"notes",
		).
		Values(
			booking.StaffID,
			booking.ServiceID,
			booking.CustomerID,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.HoldExpiresAt,
			booking.ServiceName,
			booking.PriceAmount,
			booking.CurrencyCode,
			booking.DepositAmount,
			booking.GuestName,
			booking.GuestEmail,
			booking.GuestPhone,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotConstraintViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListActiveByStaffInRange получает активные бронирования сотрудника,
// пересекающиеся с интервалом [from, to)
//
// Активные - confirmed и held с неистекшим hold_expires_at: истекший hold
// слот больше не занимает (ленивое освобождение, фонового сборщика нет).
// Внутри транзакции добавляет FOR UPDATE для защиты от гонки при создании
func (r *Repository) ListActiveByStaffInRange(ctx context.Context, staffID int64, from, to, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusConfirmed},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusHeld},
				squirrel.Or{
					squirrel.Eq{"hold_expires_at": nil},
					squirrel.Gt{"hold_expires_at": now},
				},
			},
		}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByStaffInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByStaffInRange получает все бронирования сотрудника в интервале [from, to)
// Используется операторским листингом; includeInactive добавляет отмененные,
// завершенные и no-show
func (r *Repository) ListByStaffInRange(ctx context.Context, staffID int64, from, to time.Time, includeInactive bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": []string{
			string(domain.StatusHeld),
			string(domain.StatusConfirmed),
		}})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm переводит held бронирование в confirmed
// Снимает hold_expires_at и фиксирует способ оплаты и момент подтверждения
func (r *Repository) Confirm(ctx context.Context, id int64, mode domain.PaymentMode, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_mode", mode).
		Set("confirmed_at", now).
		Set("hold_expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusHeld}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Confirm")
}

// SetPaymentMode фиксирует выбранный способ оплаты, не меняя статус
// Используется онлайн-ветками подтверждения: переход в confirmed произойдет
// позже, когда придет уведомление о размещении заказа
func (r *Repository) SetPaymentMode(ctx context.Context, id int64, mode domain.PaymentMode, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_mode", mode).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusHeld}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentMode - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentMode")
}

// ConfirmWithOrder переводит held бронирование в confirmed по событию
// размещения заказа и привязывает заказ
func (r *Repository) ConfirmWithOrder(ctx context.Context, id int64, orderID string, amountPaid int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("order_id", orderID).
		Set("amount_paid", amountPaid).
		Set("confirmed_at", now).
		Set("hold_expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": domain.StatusHeld}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmWithOrder - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ConfirmWithOrder")
}

// Cancel отменяет бронирование
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("hold_expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusHeld),
			string(domain.StatusConfirmed),
		}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateStatus обновляет статус бронирования (completed, no_show)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// ReleaseExpiredHolds отменяет истекшие held бронирования сотрудника
// Вызывается внутри транзакции создания hold'а: exclusion constraint
// не видит истечения, и без освобождения протухший hold блокировал бы
// вставку нового бронирования на тот же слот
func (r *Repository) ReleaseExpiredHolds(ctx context.Context, staffID int64, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", "hold expired").
		Set("cancelled_at", now).
		Set("hold_expires_at", nil).
		Set("updated_at", now).
		Where(squirrel.Eq{"staff_id": staffID, "status": domain.StatusHeld}).
		Where(squirrel.LtOrEq{"hold_expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpiredHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpiredHolds - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}

// execExpectingRow выполняет update и требует ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// isSlotConstraintViolation проверяет, что ошибка - нарушение
// exclusion/unique constraint на пересечение активных бронирований
func isSlotConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgExclusionViolation || pqErr.Code == pgUniqueViolation
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var paymentMode sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.StaffID,
		&booking.ServiceID,
		&booking.CustomerID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.HoldExpiresAt,
		&booking.ServiceName,
		&booking.PriceAmount,
		&booking.CurrencyCode,
		&booking.DepositAmount,
		&paymentMode,
		&booking.AmountPaid,
		&booking.OrderID,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&booking.Notes,
		&booking.ConfirmedAt,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentMode.Valid {
		mode := domain.PaymentMode(paymentMode.String)
		booking.PaymentMode = &mode
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
