package hold_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CustomerID == nil {
		return validateGuestContact(req)
	}

	return nil
}

// validateGuestContact проверяет контакты гостевого бронирования:
// нужны имя и хотя бы один способ связи
func validateGuestContact(req *Request) error {
	if req.GuestName == nil || *req.GuestName == "" {
		return fmt.Errorf("%w: guest name is required for guest bookings", ErrInvalidInput)
	}

	if len(*req.GuestName) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name must not exceed %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}

	hasEmail := req.GuestEmail != nil && *req.GuestEmail != ""
	hasPhone := req.GuestPhone != nil && *req.GuestPhone != ""
	if !hasEmail && !hasPhone {
		return fmt.Errorf("%w: guest email or phone is required for guest bookings", ErrInvalidInput)
	}

	return nil
}
