package update_schedule

import (
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Rules []models.RuleInput `json:"rules"`
}
