package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
)

// ScheduleRepository интерфейс репозитория правил рабочих часов
type ScheduleRepository interface {
	GetByStaffID(ctx context.Context, staffID int64) ([]*domain.WorkingHoursRule, error)
	Create(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error)
	DeleteByStaffID(ctx context.Context, staffID int64) error
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	Create(ctx context.Context, absence *domain.Absence) (*domain.Absence, error)
	GetByID(ctx context.Context, id int64) (*domain.Absence, error)
	GetByStaffAndRange(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Absence, error)
	Delete(ctx context.Context, id int64) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetStaffMember(ctx context.Context, staffID int64) (*staffservice.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
