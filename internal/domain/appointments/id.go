package appointments

import (
	"crypto/rand"
	"encoding/hex"
)

// NewAppointmentID genera el identificador público de la cita:
// 6 caracteres hex en minúscula desde una fuente criptográfica.
// No se chequea unicidad inline; con 16^6 combinaciones la colisión
// se acepta como despreciable al volumen esperado. Si la fuente de
// aleatoriedad falla, es irrecuperable: panic.
func NewAppointmentID() string {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("appointments: random source unavailable: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
