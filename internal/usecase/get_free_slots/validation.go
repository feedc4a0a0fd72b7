package get_free_slots

import "fmt"

// maxRangeDays лимит длины запрашиваемого диапазона
const maxRangeDays = 31

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if req.To.Sub(req.From).Hours() > maxRangeDays*24 {
		return fmt.Errorf("%w: range must not exceed %d days", ErrRangeTooLarge, maxRangeDays)
	}

	return nil
}
