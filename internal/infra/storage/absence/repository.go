package absence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var absenceColumns = []string{
	"id",
	"staff_id",
	"kind",
	"start_at",
	"end_at",
	"comment",
	"created_at",
}

// Repository репозиторий для работы с отсутствиями мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое отсутствие
func (r *Repository) Create(ctx context.Context, absence *domain.Absence) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("absences").
		Columns(
			"staff_id",
			"kind",
			"start_at",
			"end_at",
			"comment",
		).
		Values(
			absence.StaffID,
			absence.Kind,
			absence.StartAt,
			absence.EndAt,
			absence.Comment,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&absence.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	absence.CreatedAt = createdAt.Time

	return absence, nil
}

// GetByID получает отсутствие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absences").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var absence domain.Absence
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&absence.ID,
		&absence.StaffID,
		&absence.Kind,
		&absence.StartAt,
		&absence.EndAt,
		&absence.Comment,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan absence: %v", ErrScanRow, err)
	}

	absence.CreatedAt = createdAt.Time

	return &absence, nil
}

// GetByStaffAndRange получает отсутствия мастера, пересекающиеся с [from, to)
func (r *Repository) GetByStaffAndRange(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absences").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	absences := make([]*domain.Absence, 0)

	for rows.Next() {
		var absence domain.Absence
		var createdAt sql.NullTime

		err := rows.Scan(
			&absence.ID,
			&absence.StaffID,
			&absence.Kind,
			&absence.StartAt,
			&absence.EndAt,
			&absence.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByStaffAndRange - scan row: %v", ErrScanRow, err)
		}

		absence.CreatedAt = createdAt.Time
		absences = append(absences, &absence)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndRange - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}

// Delete удаляет отсутствие
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("absences").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAbsenceNotFound
	}

	return nil
}
