package domain

// Default booking settings values
const (
	DefaultAllowGuestBookings      = true
	DefaultHoldDurationMinutes     = 15
	DefaultCancellationWindowHours = 24
	DefaultTimezone                = "UTC"
)

// Slot grid constants
const (
	// SlotStepMinutes шаг сетки слотов - начала слотов кратны 15 минутам
	SlotStepMinutes = 15
)

// Business validation constants
const (
	MinHoldDurationMinutes      = 5
	MaxHoldDurationMinutes      = 120
	MinCancellationWindowHours  = 0
	MaxCancellationWindowHours  = 720 // 30 дней
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxGuestNameLength          = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
// Ровно эти статусы покрывает exclusion constraint в БД
var ActiveStatuses = []BookingStatus{
	StatusHeld,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
