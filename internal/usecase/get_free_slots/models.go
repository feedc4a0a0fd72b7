package get_free_slots

import "time"

// Request модель запроса на расчёт свободных интервалов
type Request struct {
	StaffID int64     // ID мастера
	From    time.Time // Начало диапазона (включительно)
	To      time.Time // Конец диапазона (исключительно)
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	StaffID int64     // ID мастера
	From    time.Time // Начало диапазона
	To      time.Time // Конец диапазона
	Gaps    []Gap     // Свободные интервалы в рабочих часах
}

// Gap свободный интервал [startAt, endAt)
type Gap struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}
