package create_appointment

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrStaffInactive возвращается, когда мастер деактивирован
	ErrStaffInactive = errors.New("staff member is inactive")

	// ErrSlotNotAvailable возвращается, когда запрошенное время занято
	// или лежит вне рабочих часов мастера
	ErrSlotNotAvailable = errors.New("requested time slot is not available")

	// ErrTooSoon возвращается, когда до начала записи меньше минимального срока
	ErrTooSoon = errors.New("appointment start violates minimum notice")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
