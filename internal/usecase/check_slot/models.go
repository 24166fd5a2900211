package check_slot

import "time"

// Request модель запроса на проверку доступности слота
// Интервал [StartAt, EndAt) полуоткрытый
type Request struct {
	StaffID int64
	StartAt time.Time
	EndAt   time.Time
}

// Причины недоступности слота
const (
	ReasonStartInPast   = "start time is in the past"
	ReasonOffGrid       = "start time is not aligned to the slot grid"
	ReasonStaffNotFound = "staff member not found"
	ReasonStaffInactive = "staff member is inactive"
	ReasonNoSchedule    = "staff member has no schedule for this date"
	ReasonDayBlocked    = "staff member is not available on this date"
	ReasonOutsideWindow = "slot does not fit the working window"
	ReasonSlotOccupied  = "slot overlaps an existing booking"
)

// Response результат проверки доступности
// Reason заполняется только при Available == false
type Response struct {
	Available bool
	Reason    string
}

func unavailable(reason string) *Response {
	return &Response{Available: false, Reason: reason}
}
