package appointments

// Status define el ciclo de vida de una cita.
// Pending es el estado inicial; Approved y Denied son absorbentes
// dentro de las operaciones expuestas (nada vuelve una cita a Pending).
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
)
