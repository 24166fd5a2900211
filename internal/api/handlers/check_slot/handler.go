package check_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	checkSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
)

const (
	msgInvalidStaffID = "некорректный параметр staffId"
	msgInvalidStartAt = "некорректный параметр startAt, ожидается RFC 3339"
	msgInvalidEndAt   = "некорректный параметр endAt, ожидается RFC 3339"
	msgInvalidInput   = "некорректные параметры запроса"
)

// CheckResponse HTTP модель результата проверки
type CheckResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	staffID, err := strconv.ParseInt(query.Get("staffId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid staffId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	startAt, err := time.Parse(time.RFC3339, query.Get("startAt"))
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	endAt, err := time.Parse(time.RFC3339, query.Get("endAt"))
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid endAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkSlot.Request{
		StaffID: staffID,
		StartAt: startAt,
		EndAt:   endAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability/check - Failed to check slot: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckResponse{
		Available: result.Available,
		Reason:    result.Reason,
	})
}
