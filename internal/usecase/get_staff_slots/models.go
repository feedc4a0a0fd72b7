package get_staff_slots

import "time"

// Request модель запроса на получение слотов для записи
type Request struct {
	StaffID         int64     // ID мастера
	Date            time.Time // Дата (без времени)
	DurationMinutes *int      // Длительность услуги, nil = из политики
	StepMinutes     *int      // Шаг сетки слотов, nil = из политики
}

// Response модель ответа со списком слотов
type Response struct {
	StaffID         int64     // ID мастера
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Использованная длительность
	StepMinutes     int       // Использованный шаг сетки
	Slots           []Slot    // Слоты-кандидаты, отсортированные по началу
}

// Slot слот-кандидат для записи
type Slot struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}
