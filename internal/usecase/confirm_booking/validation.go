package confirm_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.PaymentMode, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	mode, ok := domain.ValidPaymentMode(req.PaymentMode)
	if !ok {
		return "", fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, req.PaymentMode)
	}

	if req.RegionID != nil && *req.RegionID == "" {
		return "", fmt.Errorf("%w: regionID must not be empty", ErrInvalidInput)
	}

	return mode, nil
}

// validateModeAllowed проверяет, что услуга поддерживает выбранный способ оплаты
func validateModeAllowed(service *domain.Service, mode domain.PaymentMode) error {
	switch mode {
	case domain.PaymentModePayInStore:
		if !service.AllowInPerson {
			return ErrPaymentModeNotAllowed
		}
		if service.HasDeposit() {
			return ErrDepositRequired
		}
	case domain.PaymentModeDeposit:
		if !service.AllowOnline {
			return ErrPaymentModeNotAllowed
		}
		if !service.HasDeposit() {
			return ErrDepositNotConfigured
		}
	case domain.PaymentModeFull:
		if !service.AllowOnline {
			return ErrPaymentModeNotAllowed
		}
	}
	return nil
}
