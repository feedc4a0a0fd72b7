package domain

import "errors"

// Default booking policy values
const (
	DefaultSlotStepMinutes    = 15
	DefaultDurationMinutes    = 30
	DefaultMinNoticeMinutes   = 60 // 1 hour
	DefaultAdvanceBookingDays = 0  // 0 = unlimited
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 120
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480   // 8 hours
	MaxMinNoticeMinutes         = 10080 // 1 week
	MaxAdvanceBookingDays       = 365   // 1 year
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAbsenceCommentLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Working hours rule validation errors
var (
	ErrNoWeekdays       = errors.New("domain: rule has no weekdays")
	ErrInvalidWeekday   = errors.New("domain: weekday must be in range 1-7 (ISO, Monday=1)")
	ErrInvalidRuleTimes = errors.New("domain: rule start time must be before end time")
)

// InactiveStatuses список статусов, не занимающих время в календаре
// Используется при выборке занятых интервалов для расчёта доступности
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
