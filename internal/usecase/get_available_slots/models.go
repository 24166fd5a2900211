package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	StaffID   *int64    // ID сотрудника; nil = все активные сотрудники
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	ServiceID int64     // ID услуги
	Slots     []Slot    // Список доступных слотов
}

// Slot модель доступного слота
// Интервал [StartAt, EndAt) включает длительность услуги и буфер после нее
type Slot struct {
	StaffID   int64
	StaffName string
	StartAt   time.Time
	EndAt     time.Time
}
