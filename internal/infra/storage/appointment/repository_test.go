package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), dbMock
}

func appointmentRows(appts ...*domain.Appointment) *sqlmock.Rows {
	rows := sqlmock.NewRows(appointmentColumns)
	for _, a := range appts {
		rows.AddRow(
			a.ID, a.StaffID, a.CalendarID, a.ClientID,
			a.ServiceName, a.ServicePrice,
			a.StartAt, a.EndAt, string(a.Status),
			a.Notes, a.CancellationReason, a.CancelledAt,
			a.CreatedAt, a.UpdatedAt,
		)
	}
	return rows
}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           1,
		StaffID:      10,
		CalendarID:   10,
		ClientID:     100,
		ServiceName:  "Стрижка",
		ServicePrice: 1500,
		StartAt:      time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		Status:       domain.StatusConfirmed,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	appt := sampleAppointment()
	appt.ID = 0

	now := time.Now()
	dbMock.ExpectQuery(`INSERT INTO appointments \(staff_id,calendar_id,client_id,service_name,service_price,start_at,end_at,status,notes\)`).
		WithArgs(
			appt.StaffID, appt.CalendarID, appt.ClientID,
			appt.ServiceName, appt.ServicePrice,
			appt.StartAt, appt.EndAt, appt.Status, appt.Notes,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	created, err := repo.Create(context.Background(), appt)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, now, created.CreatedAt)

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	t.Run("found", func(t *testing.T) {
		appt := sampleAppointment()

		dbMock.ExpectQuery(`SELECT (.+) FROM appointments WHERE id = \$1`).
			WithArgs(appt.ID).
			WillReturnRows(appointmentRows(appt))

		got, err := repo.GetByID(context.Background(), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, appt.ID, got.ID)
		assert.Equal(t, appt.ServiceName, got.ServiceName)
		assert.Equal(t, appt.Status, got.Status)
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT (.+) FROM appointments WHERE id = \$1`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 999)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRepository_GetByStaffWithFilter(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	t.Run("active only excludes cancelled statuses", func(t *testing.T) {
		appt := sampleAppointment()

		// Без явного статуса и без IncludeInactive отменённые и no-show отсекаются
		dbMock.ExpectQuery(`SELECT (.+) FROM appointments WHERE staff_id = \$1 AND status NOT IN \(\$2,\$3,\$4\) ORDER BY start_at ASC`).
			WithArgs(
				appt.StaffID,
				string(domain.StatusCancelledByClient),
				string(domain.StatusCancelledBySalon),
				string(domain.StatusNoShow),
			).
			WillReturnRows(appointmentRows(appt))

		got, err := repo.GetByStaffWithFilter(context.Background(), domain.StaffAppointmentsFilter{StaffID: appt.StaffID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, appt.ID, got[0].ID)
	})

	t.Run("period filters by overlap", func(t *testing.T) {
		appt := sampleAppointment()
		from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		// Пересечение с [from, to): start_at < to И end_at > from
		dbMock.ExpectQuery(`SELECT (.+) FROM appointments WHERE staff_id = \$1 AND start_at < \$2 AND end_at > \$3 AND status NOT IN \(\$4,\$5,\$6\) ORDER BY start_at ASC`).
			WithArgs(
				appt.StaffID, to, from,
				string(domain.StatusCancelledByClient),
				string(domain.StatusCancelledBySalon),
				string(domain.StatusNoShow),
			).
			WillReturnRows(appointmentRows(appt))

		got, err := repo.GetByStaffWithFilter(context.Background(), domain.StaffAppointmentsFilter{
			StaffID: appt.StaffID,
			From:    &from,
			To:      &to,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("explicit status filter", func(t *testing.T) {
		appt := sampleAppointment()
		status := domain.StatusCompleted

		dbMock.ExpectQuery(`SELECT (.+) FROM appointments WHERE staff_id = \$1 AND status = \$2 ORDER BY start_at ASC`).
			WithArgs(appt.StaffID, string(status)).
			WillReturnRows(appointmentRows())

		got, err := repo.GetByStaffWithFilter(context.Background(), domain.StaffAppointmentsFilter{
			StaffID: appt.StaffID,
			Status:  &status,
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRepository_GetByClientID(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	appt := sampleAppointment()

	dbMock.ExpectQuery(`SELECT (.+) FROM appointments WHERE client_id = \$1 ORDER BY start_at DESC`).
		WithArgs(appt.ClientID).
		WillReturnRows(appointmentRows(appt))

	got, err := repo.GetByClientID(context.Background(), appt.ClientID, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, appt.ClientID, got[0].ClientID)

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	t.Run("success", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(domain.StatusCompleted, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 1, domain.StatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(domain.StatusCompleted, int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 999, domain.StatusCompleted)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	repo, dbMock := newMockRepo(t)

	dbMock.ExpectExec(`UPDATE appointments SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(domain.StatusCancelledByClient, "передумал", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 1, domain.StatusCancelledByClient, "передумал")
	assert.NoError(t, err)

	require.NoError(t, dbMock.ExpectationsWereMet())
}
