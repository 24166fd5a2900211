package cartservice

// LineItemMetadata метаданные позиции корзины
// По ним событие размещения заказа связывается обратно с бронированием
type LineItemMetadata struct {
	BookingID   int64  `json:"booking_id"`
	PaymentMode string `json:"payment_mode"`
}

// LineItem единственная позиция корзины бронирования
type LineItem struct {
	Title     string           `json:"title"`
	UnitPrice int64            `json:"unit_price"` // минорные единицы валюты
	Quantity  int              `json:"quantity"`
	Metadata  LineItemMetadata `json:"metadata"`
}

// CreateCartRequest запрос на создание корзины
type CreateCartRequest struct {
	RegionID     string   `json:"region_id"`
	CurrencyCode string   `json:"currency_code"`
	LineItem     LineItem `json:"line_item"`
}

// Cart созданная корзина
type Cart struct {
	ID string `json:"id"`
}

// Region регион из pricing-контекста
type Region struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}
