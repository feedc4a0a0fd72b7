package get_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByStaffWithFilter получает записи мастера, пересекающиеся с периодом
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория правил рабочих часов
type ScheduleRepository interface {
	GetByStaffID(ctx context.Context, staffID int64) ([]*domain.WorkingHoursRule, error)
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	GetByStaffAndRange(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Absence, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
