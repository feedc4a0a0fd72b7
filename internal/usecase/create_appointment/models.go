package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	ClientID        int64     // ID клиента (из заголовка аутентификации)
	StaffID         int64     // ID мастера
	ServiceName     string    // Название услуги (денормализуется в запись)
	ServicePrice    float64   // Цена услуги на момент записи
	StartAt         time.Time // Начало записи
	DurationMinutes *int      // Длительность, nil = из политики
	Notes           *string   // Заметки клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64     `json:"id"`
	StaffID      int64     `json:"staffId"`
	ClientID     int64     `json:"clientId"`
	ServiceName  string    `json:"serviceName"`
	ServicePrice float64   `json:"servicePrice"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
