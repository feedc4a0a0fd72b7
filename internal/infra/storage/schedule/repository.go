package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var ruleColumns = []string{
	"id",
	"staff_id",
	"weekdays",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffID получает все правила рабочих часов мастера
/// Правила независимы и не объединяются: утренняя и вечерняя смены
// одного дня хранятся отдельными строками
func (r *Repository) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WorkingHoursRule, 0)

	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByStaffID - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Create создает правило рабочих часов
func (r *Repository) Create(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns(
			"staff_id",
			"weekdays",
			"start_time",
			"end_time",
		).
		Values(
			rule.StaffID,
			weekdaysToArray(rule.Weekdays),
			rule.StartTime.String(),
			rule.EndTime.String(),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// DeleteByStaffID удаляет все правила мастера
// Используется вместе с Create внутри транзакции для полной замены расписания
func (r *Repository) DeleteByStaffID(ctx context.Context, staffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByStaffID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByStaffID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// scanRule сканирует одну строку в доменную модель
func scanRule(scan func(dest ...interface{}) error) (*domain.WorkingHoursRule, error) {
	var rule domain.WorkingHoursRule
	var weekdays pq.Int64Array
	var startTime, endTime string
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&rule.ID,
		&rule.StaffID,
		&weekdays,
		&startTime,
		&endTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Weekdays = make([]int, len(weekdays))
	for i, wd := range weekdays {
		rule.Weekdays[i] = int(wd)
	}
	rule.StartTime = types.TimeString(startTime)
	rule.EndTime = types.TimeString(endTime)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// weekdaysToArray конвертирует ISO дни недели в массив для PostgreSQL
func weekdaysToArray(weekdays []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(weekdays))
	for i, wd := range weekdays {
		arr[i] = int64(wd)
	}
	return arr
}
