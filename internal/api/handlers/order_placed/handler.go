package order_placed

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgBookingNotFound     = "бронирование не найдено"
	msgInvalidTransition   = "бронирование нельзя подтвердить"
	msgPaymentModeMismatch = "способ оплаты не совпадает с зафиксированным"
	msgInvalidInput        = "некорректные данные события"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /internal/events/order-placed
// Внутренний вебхук сервиса корзин: заказ размещен, оплата прошла
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.OrderPlacedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/events/order-placed - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.HandleOrderPlaced(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookingsService.ErrPaymentModeMismatch):
			handlers.RespondError(w, http.StatusConflict, msgPaymentModeMismatch)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /internal/events/order-placed - Failed to handle event: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/events/order-placed - Booking confirmed: booking_id=%d, order_id=%s",
		req.BookingID, req.OrderID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
