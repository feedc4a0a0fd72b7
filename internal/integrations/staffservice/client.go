package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы со StaffService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStaffMember получает профиль мастера
func (c *Client) GetStaffMember(ctx context.Context, staffID int64) (*StaffMember, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, staffID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid staff ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrStaffNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var staff StaffMember
	if err := json.NewDecoder(resp.Body).Decode(&staff); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &staff, nil
}

// CheckStaffActive проверяет существование и активность мастера с graceful degradation.
// При недоступности StaffService возвращает ErrServiceDegraded, что позволяет
// продолжить запись без проверки профиля мастера
func (c *Client) CheckStaffActive(ctx context.Context, staffID int64) (*StaffMember, error) {
	c.log.Info("Checking staff member staff_id=%d", staffID)

	staff, err := c.GetStaffMember(ctx, staffID)
	if err != nil {
		// Критичная бизнес-ошибка (мастер не существует) пробрасывается дальше
		if err == ErrStaffNotFound {
			c.log.Info("Staff member not found staff_id=%d", staffID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("StaffService unavailable, applying graceful degradation for staff_id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: staff_id=%d, error=%v", ErrServiceDegraded, staffID, err)
	}

	if !staff.IsActive {
		c.log.Info("Staff member is inactive staff_id=%d", staffID)
		return nil, ErrStaffInactive
	}

	c.log.Info("Staff member verified staff_id=%d, salon_id=%d", staffID, staff.SalonID)
	return staff, nil
}
