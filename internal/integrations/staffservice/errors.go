package staffservice

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден в StaffService
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrStaffInactive возвращается, когда мастер деактивирован
	ErrStaffInactive = errors.New("staff member is inactive")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что StaffService недоступен и проверку мастера следует пропустить
	ErrServiceDegraded = errors.New("staffservice unavailable: graceful degradation applied")
)
