package create_absence

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// CreateAbsenceRequest HTTP request model
type CreateAbsenceRequest struct {
	Kind    string  `json:"kind"`    // vacation, sick, break, other
	StartAt string  `json:"startAt"` // RFC 3339
	EndAt   string  `json:"endAt"`   // RFC 3339
	Comment *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом времени)
func (r *CreateAbsenceRequest) ToServiceRequest(userID, staffID int64) (*models.CreateAbsenceRequest, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &models.CreateAbsenceRequest{
		UserID:  userID,
		StaffID: staffID,
		Kind:    r.Kind,
		StartAt: startAt,
		EndAt:   endAt,
		Comment: r.Comment,
	}, nil
}
