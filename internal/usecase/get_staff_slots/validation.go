package get_staff_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.StepMinutes != nil {
		if *req.StepMinutes < domain.MinSlotStepMinutes || *req.StepMinutes > domain.MaxSlotStepMinutes {
			return fmt.Errorf("%w: stepMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
		}
	}

	return nil
}

// validateAdvanceLimit проверяет, что дата не превышает ограничение политики
func validateAdvanceLimit(date time.Time, now time.Time, advanceBookingDays int, loc *time.Location) error {
	// advanceBookingDays = 0 означает отсутствие ограничений
	if advanceBookingDays == 0 {
		return nil
	}

	maxDay := domain.StartOfDay(now, loc).AddDate(0, 0, advanceBookingDays)
	if domain.StartOfDay(date, loc).After(maxDay) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
