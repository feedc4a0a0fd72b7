package update_policy

// UpdatePolicyRequest HTTP request model
// StaffID == nil означает общесалонную политику
type UpdatePolicyRequest struct {
	StaffID                *int64 `json:"staffId,omitempty"`
	SlotStepMinutes        int    `json:"slotStepMinutes"`
	DefaultDurationMinutes int    `json:"defaultDurationMinutes"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
}
