package domain

import "time"

// DepositType тип депозитной политики услуги
type DepositType string

const (
	DepositNone       DepositType = "none"
	DepositFixed      DepositType = "fixed"
	DepositPercentage DepositType = "percentage"
)

// Service запись каталога услуг
// После того как на услугу ссылается бронирование, её цена и название
// считаются неизменяемыми - бронирование хранит собственный снимок
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	BufferMinutes   int // пауза после услуги до начала следующего слота

	PriceAmount  int64 // минорные единицы валюты
	CurrencyCode string

	DepositType  DepositType
	DepositValue int64 // проценты для percentage, минорные единицы для fixed

	AllowInPerson bool
	AllowOnline   bool

	Active   bool
	RegionID *string // обязателен для онлайн-оплаты

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDurationMinutes возвращает полную длительность слота: услуга + буфер
func (s *Service) TotalDurationMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}

// HasDeposit returns true if the service requires a deposit
func (s *Service) HasDeposit() bool {
	return s.DepositType != DepositNone && s.DepositType != ""
}

// CalculateDeposit вычисляет сумму депозита от цены в минорных единицах
func (s *Service) CalculateDeposit(priceAmount int64) int64 {
	switch s.DepositType {
	case DepositPercentage:
		return priceAmount * s.DepositValue / 100
	case DepositFixed:
		return s.DepositValue
	default:
		return 0
	}
}
