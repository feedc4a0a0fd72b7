package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var policyColumns = []string{
	"id",
	"staff_id",
	"slot_step_minutes",
	"default_duration_minutes",
	"min_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с политиками бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaff получает политику для мастера (staffID задан)
// или общесалонную политику (staffID == nil)
func (r *Repository) GetByStaff(ctx context.Context, staffID *int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(policyColumns...).
		From("booking_policies")

	if staffID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaff - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	policy, err := scanPolicy(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaff - scan policy: %v", ErrScanRow, err)
	}

	return policy, nil
}

// GetEffective получает действующую политику с учетом иерархии приоритетов:
// 1. Политика конкретного мастера (staff_id = staffID)
// 2. Общесалонная политика (staff_id IS NULL)
//
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound
func (r *Repository) GetEffective(ctx context.Context, staffID int64) (*domain.BookingPolicy, error) {
	// 1. Пробуем получить политику конкретного мастера
	policy, err := r.GetByStaff(ctx, &staffID)
	if err == nil {
		return policy, nil
	}
	if err != ErrPolicyNotFound {
		return nil, fmt.Errorf("%w: GetEffective - staff level: %v", ErrExecQuery, err)
	}

	// 2. Пробуем получить общесалонную политику
	policy, err = r.GetByStaff(ctx, nil)
	if err == nil {
		return policy, nil
	}
	if err != ErrPolicyNotFound {
		return nil, fmt.Errorf("%w: GetEffective - salon level: %v", ErrExecQuery, err)
	}

	return nil, ErrPolicyNotFound
}

// Upsert создает или обновляет политику на своём уровне иерархии
func (r *Repository) Upsert(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Частичный уникальный индекс по staff_id (с отдельным индексом для NULL)
	// позволяет использовать ON CONFLICT для обоих уровней
	conflictTarget := "(staff_id) WHERE staff_id IS NOT NULL"
	if policy.StaffID == nil {
		conflictTarget = "((staff_id IS NULL)) WHERE staff_id IS NULL"
	}

	query, args, err := psqlbuilder.Insert("booking_policies").
		Columns(
			"staff_id",
			"slot_step_minutes",
			"default_duration_minutes",
			"min_notice_minutes",
			"advance_booking_days",
		).
		Values(
			policy.StaffID,
			policy.SlotStepMinutes,
			policy.DefaultDurationMinutes,
			policy.MinNoticeMinutes,
			policy.AdvanceBookingDays,
		).
		Suffix(fmt.Sprintf(`ON CONFLICT %s DO UPDATE SET
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`, conflictTarget)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}

// scanPolicy сканирует одну строку в доменную модель
func scanPolicy(scan func(dest ...interface{}) error) (*domain.BookingPolicy, error) {
	var policy domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&policy.ID,
		&policy.StaffID,
		&policy.SlotStepMinutes,
		&policy.DefaultDurationMinutes,
		&policy.MinNoticeMinutes,
		&policy.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}
