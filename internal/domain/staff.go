package domain

import "time"

// Staff бронируемый ресурс (мастер, специалист)
// Владеет набором правил доступности и бронированиями
type Staff struct {
	ID     int64
	Name   string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
