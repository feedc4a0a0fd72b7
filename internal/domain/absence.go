package domain

import "time"

// AbsenceKind classifies why a staff member is unavailable
type AbsenceKind string

const (
	AbsenceVacation AbsenceKind = "vacation"
	AbsenceSick     AbsenceKind = "sick"
	AbsenceBreak    AbsenceKind = "break"
	AbsenceOther    AbsenceKind = "other"
)

// IsValid returns true for a known absence kind
func (k AbsenceKind) IsValid() bool {
	switch k {
	case AbsenceVacation, AbsenceSick, AbsenceBreak, AbsenceOther:
		return true
	default:
		return false
	}
}

// Absence blocks a staff member's time outside of appointments.
// The availability engine treats absences and active appointments the same
// way: both are busy intervals subtracted from the open segments.
type Absence struct {
	ID      int64
	StaffID int64
	Kind    AbsenceKind
	StartAt time.Time
	EndAt   time.Time
	Comment *string

	CreatedAt time.Time
}

// Interval returns the blocked time as a half-open interval
func (a *Absence) Interval() TimeInterval {
	return TimeInterval{Start: a.StartAt, End: a.EndAt}
}
