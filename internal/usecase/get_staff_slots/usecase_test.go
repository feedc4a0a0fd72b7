package get_staff_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	policyRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/policy"
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

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (f *fakePolicyRepo) GetEffective(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	return f.policy, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(now time.Time, rules []*domain.WorkingHoursRule, policy *fakePolicyRepo, busy []*domain.Appointment) *UseCase {
	uc := NewUseCase(
		&fakeApptRepo{appointments: busy},
		&fakeScheduleRepo{rules: rules},
		&fakeAbsenceRepo{},
		policy,
		time.UTC,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func weekdayRule(start, end string, weekdays ...int) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		StaffID:   10,
		Weekdays:  weekdays,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestExecute_DefaultPolicyQuantization(t *testing.T) {
	// Понедельник 2026-03-02, смена 09:00-12:00, политики в БД нет:
	// встроенные значения - услуга 30 минут, шаг 15 минут, запись за час
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour) // 08:00, минимальный срок отсекает до 09:00

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "12:00", 1)}
	uc := newTestUseCase(now, rules, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, nil)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 10, Date: day})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultSlotStepMinutes, resp.StepMinutes)

	// Старты 09:00 .. 11:30 с шагом 15 минут
	require.Len(t, resp.Slots, 11)
	assert.Equal(t, day.Add(9*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), resp.Slots[0].EndAt)
	assert.Equal(t, day.Add(11*time.Hour+30*time.Minute), resp.Slots[10].StartAt)
}

func TestExecute_RequestOverridesPolicy(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(7 * time.Hour)

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "12:00", 1)}
	uc := newTestUseCase(now, rules, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, nil)

	duration := 60
	step := 30
	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:         10,
		Date:            day,
		DurationMinutes: &duration,
		StepMinutes:     &step,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 30, resp.StepMinutes)

	// Старты 09:00 .. 11:00 с шагом 30 минут
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, day.Add(9*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[0].EndAt)
	assert.Equal(t, day.Add(11*time.Hour), resp.Slots[4].StartAt)
}

func TestExecute_MinNoticeClipsSlots(t *testing.T) {
	// now = 10:05, запись за час: первый доступный старт не раньше 11:05,
	// а с шагом сетки от начала гэпа 11:05 - первый кандидат
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(10*time.Hour + 5*time.Minute)

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "12:00", 1)}
	uc := newTestUseCase(now, rules, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, nil)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 10, Date: day})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.False(t, resp.Slots[0].StartAt.Before(now.Add(time.Hour)))
}

func TestExecute_PastDateYieldsNoSlots(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.AddDate(0, 0, 3)

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "12:00", 1)}
	uc := newTestUseCase(now, rules, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, nil)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 10, Date: day})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	policy := &domain.BookingPolicy{
		SlotStepMinutes:        15,
		DefaultDurationMinutes: 30,
		MinNoticeMinutes:       60,
		AdvanceBookingDays:     7,
	}

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "12:00", 1, 2, 3, 4, 5, 6, 7)}
	uc := newTestUseCase(now, rules, &fakePolicyRepo{policy: policy}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID: 10,
		Date:    now.AddDate(0, 0, 10),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_BusyAppointmentsRemoveCandidates(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(7 * time.Hour)

	rules := []*domain.WorkingHoursRule{weekdayRule("09:00", "11:00", 1)}
	busy := []*domain.Appointment{{
		StaffID: 10,
		StartAt: day.Add(9 * time.Hour),
		EndAt:   day.Add(10 * time.Hour),
		Status:  domain.StatusConfirmed,
	}}

	uc := newTestUseCase(now, rules, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, busy)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 10, Date: day})
	require.NoError(t, err)

	// Остался гэп [10:00, 11:00): старты 10:00, 10:15, 10:30
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[0].StartAt)
}
