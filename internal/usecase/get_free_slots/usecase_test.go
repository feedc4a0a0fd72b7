package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Фейки зависимостей

type fakeApptRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeApptRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeScheduleRepo struct {
	rules []*domain.WorkingHoursRule
	err   error
}

func (f *fakeScheduleRepo) GetByStaffID(_ context.Context, _ int64) ([]*domain.WorkingHoursRule, error) {
	return f.rules, f.err
}

type fakeAbsenceRepo struct {
	absences []*domain.Absence
	err      error
}

func (f *fakeAbsenceRepo) GetByStaffAndRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Absence, error) {
	return f.absences, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(rules []*domain.WorkingHoursRule, appts []*domain.Appointment, absences []*domain.Absence) *UseCase {
	return NewUseCase(
		&fakeApptRepo{appointments: appts},
		&fakeScheduleRepo{rules: rules},
		&fakeAbsenceRepo{absences: absences},
		time.UTC,
		nopLogger{},
	)
}

func weekdayRule(start, end string, weekdays ...int) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		StaffID:   10,
		Weekdays:  weekdays,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestExecute_SingleDayWithBusyIntervals(t *testing.T) {
	// Понедельник 2026-03-02, смена 09:00-18:00,
	// запись 10:00-11:00 и перерыв 12:00-13:00
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1, 2, 3, 4, 5)}
	appts := []*domain.Appointment{{
		StaffID: 10,
		StartAt: day.Add(10 * time.Hour),
		EndAt:   day.Add(11 * time.Hour),
		Status:  domain.StatusConfirmed,
	}}
	absences := []*domain.Absence{{
		StaffID: 10,
		Kind:    domain.AbsenceBreak,
		StartAt: day.Add(12 * time.Hour),
		EndAt:   day.Add(13 * time.Hour),
	}}

	uc := newTestUseCase(rules, appts, absences)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID: 10,
		From:    day,
		To:      day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	require.Len(t, resp.Gaps, 3)
	assert.Equal(t, Gap{StartAt: day.Add(9 * time.Hour), EndAt: day.Add(10 * time.Hour)}, resp.Gaps[0])
	assert.Equal(t, Gap{StartAt: day.Add(11 * time.Hour), EndAt: day.Add(12 * time.Hour)}, resp.Gaps[1])
	assert.Equal(t, Gap{StartAt: day.Add(13 * time.Hour), EndAt: day.Add(18 * time.Hour)}, resp.Gaps[2])
}

func TestExecute_MultiDayGapsAreNotMerged(t *testing.T) {
	// Два рабочих дня подряд без занятости: по одному гэпу на день
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1, 2)}
	uc := newTestUseCase(rules, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID: 10,
		From:    monday,
		To:      monday.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.Len(t, resp.Gaps, 2)
	assert.Equal(t, monday.Add(9*time.Hour), resp.Gaps[0].StartAt)
	assert.Equal(t, monday.AddDate(0, 0, 1).Add(9*time.Hour), resp.Gaps[1].StartAt)
}

func TestExecute_NoRulesMeansNoGaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(nil, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID: 10,
		From:    day,
		To:      day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Gaps)
}

func TestExecute_Validation(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, nil)

	t.Run("staff id must be positive", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StaffID: 0, From: day, To: day.AddDate(0, 0, 1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("from must be before to", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StaffID: 10, From: day, To: day})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("range too large", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StaffID: 10, From: day, To: day.AddDate(0, 0, 60)})
		assert.ErrorIs(t, err, ErrRangeTooLarge)
	})
}
