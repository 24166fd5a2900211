package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StaffID   int64  `json:"staffId"`
	StaffName string `json:"staffName"`
	StartAt   string `json:"startAt"` // ISO 8601
	EndAt     string `json:"endAt"`   // ISO 8601
}

// SlotsResponse HTTP модель ответа со списком слотов
type SlotsResponse struct {
	Date      string         `json:"date"` // "2025-10-15"
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StaffID:   s.StaffID,
			StaffName: s.StaffName,
			StartAt:   s.StartAt.Format(time.RFC3339),
			EndAt:     s.EndAt.Format(time.RFC3339),
		}
	}

	return &SlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
