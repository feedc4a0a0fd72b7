package get_policy

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/policy/models"
)

type PolicyService interface {
	GetEffective(ctx context.Context, req *models.GetPolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
