package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	policyRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/policy"
	staffClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Фейки зависимостей

type fakeApptRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	err          error
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	appt.ID = 7
	f.created = appt
	return appt, nil
}

func (f *fakeApptRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	rules []*domain.WorkingHoursRule
}

func (f *fakeScheduleRepo) GetByStaffID(_ context.Context, _ int64) ([]*domain.WorkingHoursRule, error) {
	return f.rules, nil
}

type fakeAbsenceRepo struct {
	absences []*domain.Absence
}

func (f *fakeAbsenceRepo) GetByStaffAndRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Absence, error) {
	return f.absences, nil
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (f *fakePolicyRepo) GetEffective(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	return f.policy, f.err
}

type fakeStaffClient struct {
	member *staffClient.StaffMember
	err    error
}

func (f *fakeStaffClient) CheckStaffActive(_ context.Context, _ int64) (*staffClient.StaffMember, error) {
	return f.member, f.err
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type fixture struct {
	apptRepo    *fakeApptRepo
	staffClient *fakeStaffClient
	useCase     *UseCase
}

func newFixture(now time.Time, rules []*domain.WorkingHoursRule, existing []*domain.Appointment) *fixture {
	apptRepo := &fakeApptRepo{appointments: existing}
	staff := &fakeStaffClient{member: &staffClient.StaffMember{
		ID:         10,
		CalendarID: 42,
		IsActive:   true,
	}}

	uc := NewUseCase(
		apptRepo,
		&fakeScheduleRepo{rules: rules},
		&fakeAbsenceRepo{},
		&fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		staff,
		fakeTxManager{},
		time.UTC,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &fixture{apptRepo: apptRepo, staffClient: staff, useCase: uc}
}

func weekdayRule(start, end string, weekdays ...int) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		StaffID:   10,
		Weekdays:  weekdays,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func validRequest(day time.Time) *Request {
	return &Request{
		ClientID:     100,
		StaffID:      10,
		ServiceName:  "Стрижка",
		ServicePrice: 1500,
		StartAt:      day.Add(10 * time.Hour),
	}
}

func TestExecute_Success(t *testing.T) {
	// Понедельник 2026-03-02, смена 09:00-18:00, запись на 10:00
	// Длительность не задана - берётся из встроенной политики (30 минут)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)

	f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)

	resp, err := f.useCase.Execute(context.Background(), validRequest(day))
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, day.Add(10*time.Hour), resp.StartAt)
	assert.Equal(t, day.Add(10*time.Hour+30*time.Minute), resp.EndAt)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Календарь берётся из профиля мастера в StaffService
	require.NotNil(t, f.apptRepo.created)
	assert.Equal(t, int64(42), f.apptRepo.created.CalendarID)
}

func TestExecute_SlotOverlapsExistingAppointment(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)

	existing := []*domain.Appointment{{
		StaffID: 10,
		StartAt: day.Add(10 * time.Hour),
		EndAt:   day.Add(11 * time.Hour),
		Status:  domain.StatusConfirmed,
	}}

	f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, existing)

	req := validRequest(day)
	req.StartAt = day.Add(10*time.Hour + 30*time.Minute)

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.apptRepo.created)
}

func TestExecute_SlotOutsideWorkingHours(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)

	f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)

	req := validRequest(day)
	req.StartAt = day.Add(19 * time.Hour)

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotCrossesClosingTime(t *testing.T) {
	// Запись 17:45 на 30 минут вылезает за закрытие в 18:00
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)

	f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)

	req := validRequest(day)
	req.StartAt = day.Add(17*time.Hour + 45*time.Minute)

	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TooSoon(t *testing.T) {
	// Встроенная политика требует записи минимум за час
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(9*time.Hour + 45*time.Minute)

	f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)

	_, err := f.useCase.Execute(context.Background(), validRequest(day))
	assert.ErrorIs(t, err, ErrTooSoon)
}

func TestExecute_StaffChecks(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)

	t.Run("staff not found", func(t *testing.T) {
		f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)
		f.staffClient.member = nil
		f.staffClient.err = staffClient.ErrStaffNotFound

		_, err := f.useCase.Execute(context.Background(), validRequest(day))
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("staff inactive", func(t *testing.T) {
		f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)
		f.staffClient.member = nil
		f.staffClient.err = staffClient.ErrStaffInactive

		_, err := f.useCase.Execute(context.Background(), validRequest(day))
		assert.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("degraded service proceeds without check", func(t *testing.T) {
		// StaffService недоступен: запись создаётся, календарь = staffID
		f := newFixture(now, []*domain.WorkingHoursRule{weekdayRule("09:00", "18:00", 1)}, nil)
		f.staffClient.member = nil
		f.staffClient.err = staffClient.ErrServiceDegraded

		resp, err := f.useCase.Execute(context.Background(), validRequest(day))
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, int64(10), f.apptRepo.created.CalendarID)
	})
}

func TestExecute_Validation(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)
	f := newFixture(now, nil, nil)

	t.Run("missing service name", func(t *testing.T) {
		req := validRequest(day)
		req.ServiceName = ""

		_, err := f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		req := validRequest(day)
		req.ServicePrice = -1

		_, err := f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duration out of range", func(t *testing.T) {
		req := validRequest(day)
		tooLong := domain.MaxDurationMinutes + 1
		req.DurationMinutes = &tooLong

		_, err := f.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
