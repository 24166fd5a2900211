package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// GenerateSlotStarts генерирует моменты начала слотов на дату
//
// Времена начала идут с шагом stepMinutes от startTime и строго меньше
// endTime. Вырожденное окно (startTime == endTime) дает пустой список.
// Генератор не округляет: окна правил в валидной конфигурации кратны шагу
func GenerateSlotStarts(startTime, endTime types.TimeString, date time.Time, stepMinutes int, loc *time.Location) []time.Time {
	starts := make([]time.Time, 0)

	if stepMinutes <= 0 {
		return starts
	}

	y, m, d := date.In(loc).Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	endMinutes := endTime.Minutes()
	for cur := startTime.Minutes(); cur < endMinutes; cur += stepMinutes {
		starts = append(starts, midnight.Add(time.Duration(cur)*time.Minute))
	}

	return starts
}

// WindowContains проверяет, что интервал [start, end) целиком помещается
// в рабочее окно [windowStart, windowEnd) на ту же дату
func WindowContains(windowStart, windowEnd types.TimeString, date time.Time, loc *time.Location, start, end time.Time) bool {
	y, m, d := date.In(loc).Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	winStart := midnight.Add(time.Duration(windowStart.Minutes()) * time.Minute)
	winEnd := midnight.Add(time.Duration(windowEnd.Minutes()) * time.Minute)

	return !start.Before(winStart) && !end.After(winEnd)
}
