package get_staff_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
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

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	// GetEffective получает действующую политику с учетом иерархии приоритетов
	GetEffective(ctx context.Context, staffID int64) (*domain.BookingPolicy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
