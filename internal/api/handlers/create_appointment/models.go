package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StaffID         int64   `json:"staffId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	StartAt         string  `json:"startAt"` // RFC 3339
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:        clientID,
		StaffID:         r.StaffID,
		ServiceName:     r.ServiceName,
		ServicePrice:    r.ServicePrice,
		StartAt:         startAt,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}
