package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	confirmBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_booking"
)

const (
	msgInvalidBookingID      = "некорректный идентификатор бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgBookingNotFound       = "бронирование не найдено"
	msgNotHeld               = "бронирование не в статусе удержания"
	msgHoldExpired           = "срок удержания слота истек"
	msgServiceNotFound       = "услуга не найдена"
	msgPaymentModeNotAllowed = "способ оплаты недоступен для этой услуги"
	msgDepositRequired       = "для этой услуги требуется депозит"
	msgDepositNotConfigured  = "для этой услуги депозит не настроен"
	msgRegionRequired        = "для онлайн-оплаты требуется регион"
	msgRegionNotFound        = "регион не найден"
	msgCartCreationFailed    = "не удалось создать корзину для оплаты"
	msgInvalidInput          = "некорректные данные запроса"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/confirm - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		BookingID:   bookingID,
		PaymentMode: req.PaymentMode,
		RegionID:    req.RegionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmBooking.ErrNotHeld):
			handlers.RespondError(w, http.StatusConflict, msgNotHeld)

		case errors.Is(err, confirmBooking.ErrHoldExpired):
			handlers.RespondError(w, http.StatusConflict, msgHoldExpired)

		case errors.Is(err, confirmBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, confirmBooking.ErrPaymentModeNotAllowed):
			handlers.RespondBadRequest(w, msgPaymentModeNotAllowed)

		case errors.Is(err, confirmBooking.ErrDepositRequired):
			handlers.RespondBadRequest(w, msgDepositRequired)

		case errors.Is(err, confirmBooking.ErrDepositNotConfigured):
			handlers.RespondBadRequest(w, msgDepositNotConfigured)

		case errors.Is(err, confirmBooking.ErrRegionRequired):
			handlers.RespondBadRequest(w, msgRegionRequired)

		case errors.Is(err, confirmBooking.ErrRegionNotFound):
			handlers.RespondNotFound(w, msgRegionNotFound)

		case errors.Is(err, confirmBooking.ErrCartCreationFailed):
			handlers.RespondError(w, http.StatusBadGateway, msgCartCreationFailed)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/%d/confirm - Failed to confirm: error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/confirm - Outcome: %s", bookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
