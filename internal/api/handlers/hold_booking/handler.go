package hold_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	holdBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/hold_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStartAt        = "некорректный формат времени начала, ожидается RFC 3339"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceInactive       = "услуга недоступна"
	msgSlotNotAvailable      = "выбранный слот недоступен"
	msgSlotConflict          = "слот только что заняли, выберите другое время"
	msgGuestBookingsDisabled = "гостевые бронирования отключены"
	msgInvalidInput          = "некорректные данные запроса"
)

type Handler struct {
	useCase HoldBookingUseCase
	logger  Logger
}

func NewHandler(useCase HoldBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/hold
// Маршрут публичный: гостевые бронирования приходят без X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req HoldBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.OptionalUserID(r))
	if err != nil {
		h.logger.Warn("POST /bookings/hold - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, holdBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings/hold - Slot conflict: staff_id=%d", req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, holdBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/hold - Slot not available: staff_id=%d", req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, holdBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, holdBooking.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, holdBooking.ErrGuestBookingsDisabled):
			handlers.RespondError(w, http.StatusForbidden, msgGuestBookingsDisabled)

		case errors.Is(err, holdBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/hold - Failed to create hold: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/hold - Hold created: booking_id=%d, staff_id=%d", result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
