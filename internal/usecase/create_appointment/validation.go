package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// maxServiceNameLength лимит длины названия услуги
const maxServiceNameLength = 255

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceName == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}

	if len(req.ServiceName) > maxServiceNameLength {
		return fmt.Errorf("%w: serviceName exceeds %d characters", ErrInvalidInput, maxServiceNameLength)
	}

	if req.ServicePrice < 0 {
		return fmt.Errorf("%w: servicePrice must not be negative", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateNotice проверяет минимальный срок до начала записи
func validateNotice(startAt time.Time, now time.Time, minNoticeMinutes int) error {
	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if startAt.Before(earliest) {
		return fmt.Errorf("%w: at least %d minutes notice required", ErrTooSoon, minNoticeMinutes)
	}
	return nil
}

// validateAdvanceLimit проверяет ограничение на запись наперёд
func validateAdvanceLimit(startAt time.Time, now time.Time, advanceBookingDays int, loc *time.Location) error {
	// advanceBookingDays = 0 означает отсутствие ограничений
	if advanceBookingDays == 0 {
		return nil
	}

	maxDay := domain.StartOfDay(now, loc).AddDate(0, 0, advanceBookingDays)
	if domain.StartOfDay(startAt, loc).After(maxDay) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
