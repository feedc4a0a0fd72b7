package cancel_appointment

// CancelAppointmentRequest HTTP request model
// Причина отмены опциональна
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}
