package staffservice

// StaffMember модель мастера из StaffService
type StaffMember struct {
	ID         int64  `json:"id"`
	SalonID    int64  `json:"salon_id"`
	CalendarID int64  `json:"calendar_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
